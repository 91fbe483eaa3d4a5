package entity

import "gorm.io/datatypes"

type Patient struct {
	ID               int                         `gorm:"primaryKey" json:"Id"`
	Name             string                      `gorm:"not null" json:"name"`
	DateOfBirth      string                      `gorm:"not null" json:"dateOfBirth"`
	Gender           string                      `gorm:"not null" json:"gender"`
	Phone            string                      `gorm:"not null" json:"phone"`
	Email            string                      `gorm:"not null" json:"email"`
	Address          string                      `json:"address"`
	EmergencyContact string                      `json:"emergencyContact"`
	BloodType        string                      `json:"bloodType"`
	Allergies        datatypes.JSONSlice[string] `json:"allergies"`
	RegistrationDate string                      `gorm:"not null" json:"registrationDate"` // YYYY-MM-DD, stamped once
}
