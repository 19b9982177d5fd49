package goals

import (
	"testing"

	"github.com/fitflow/fitflow/internal/models"
)

func TestCalorieGoalReference(t *testing.T) {
	// round((10*70 + 6.25*175 - 5*30 + 5) * 1.375) = round(1648.75 * 1.375)
	got := CalorieGoal(70, 175, 30, 2, SexMale)
	if got != 2267 {
		t.Errorf("CalorieGoal(70,175,30,2,M) = %d, want 2267", got)
	}
}

func TestCalorieGoalFemaleOffset(t *testing.T) {
	male := CalorieGoal(70, 175, 30, 1, SexMale)
	female := CalorieGoal(70, 175, 30, 1, SexFemale)
	if female >= male {
		t.Errorf("female goal %d should be below male goal %d", female, male)
	}
}

func TestCalorieGoalPositiveAndMonotonic(t *testing.T) {
	cases := []struct {
		weight float64
		height float64
		age    int
	}{
		{31, 101, 15},
		{70, 175, 30},
		{120, 200, 60},
		{299, 249, 99},
	}
	for _, c := range cases {
		prev := 0
		for level := 1; level <= 4; level++ {
			got := CalorieGoal(c.weight, c.height, c.age, level, SexMale)
			if got <= 0 {
				t.Errorf("CalorieGoal(%v,%v,%v,%d) = %d, want positive", c.weight, c.height, c.age, level, got)
			}
			if got < prev {
				t.Errorf("CalorieGoal not non-decreasing in activity level: level %d gave %d after %d", level, got, prev)
			}
			prev = got
		}
	}
}

func TestWaterGoal(t *testing.T) {
	cases := []struct {
		name     string
		weight   float64
		activity int
		tempC    float64
		want     int
	}{
		{"hot day adds allowance", 70, 2, 30, 2850},
		{"mild day no allowance", 70, 2, 20, 2350},
		{"threshold is exclusive", 70, 2, 25, 2350},
		{"sedentary baseline", 60, 1, 10, 1800},
		{"fractional weight rounds", 70.5, 1, 10, 2115},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := WaterGoal(c.weight, c.activity, c.tempC); got != c.want {
				t.Errorf("WaterGoal(%v,%d,%v) = %d, want %d", c.weight, c.activity, c.tempC, got, c.want)
			}
		})
	}
}

func TestCaloriesBurned(t *testing.T) {
	cases := []struct {
		wt        models.WorkoutType
		intensity models.Intensity
		duration  int
		want      int
	}{
		{models.WorkoutRunning, models.IntensityHigh, 30, 360},
		{models.WorkoutWalking, models.IntensityLow, 60, 180},
		{models.WorkoutYoga, models.IntensityMedium, 45, 135},
		{models.WorkoutOther, models.IntensityMedium, 20, 100},
	}
	for _, c := range cases {
		if got := CaloriesBurned(c.wt, c.intensity, c.duration); got != c.want {
			t.Errorf("CaloriesBurned(%s,%s,%d) = %d, want %d", c.wt, c.intensity, c.duration, got, c.want)
		}
	}
}

func TestCaloriesBurnedUnknownTypeFallsBack(t *testing.T) {
	got := CaloriesBurned(models.WorkoutType("Skydiving"), models.IntensityHigh, 10)
	want := CaloriesBurned(models.WorkoutOther, models.IntensityHigh, 10)
	if got != want {
		t.Errorf("unknown type burned %d, want Other rate %d", got, want)
	}
}

func TestCaloriesBurnedUnknownIntensityFallsBack(t *testing.T) {
	got := CaloriesBurned(models.WorkoutRunning, models.Intensity("extreme"), 10)
	want := CaloriesBurned(models.WorkoutRunning, models.IntensityLow, 10)
	if got != want {
		t.Errorf("unknown intensity burned %d, want low rate %d", got, want)
	}
}
