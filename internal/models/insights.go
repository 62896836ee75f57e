package models

// ProgressInsights summarizes a user's progress
type ProgressInsights struct {
	WorkoutsCompleted int `json:"workouts_completed"`
	NutritionGoalsMet int `json:"nutrition_goals_met"`
	StreakDays        int `json:"streak_days"`
}

// MetricsInsights holds aggregate workout and nutrition metrics
type MetricsInsights struct {
	AvgWorkoutDuration float64 `json:"avg_workout_duration"`
	CaloriesBurned     float64 `json:"calories_burned"`
	NutritionScore     float64 `json:"nutrition_score"`
}

// SalesInfo is the sales handler's reply
type SalesInfo struct {
	Message string `json:"message"`
}
