package models

type UserProfile struct {
	DietaryRestrictions string `json:"dietaryRestrictions"`
	HealthGoals         string `json:"healthGoals"`
	MedicalConditions   string `json:"medicalConditions"`
	Preferences         string `json:"preferences"`
}
