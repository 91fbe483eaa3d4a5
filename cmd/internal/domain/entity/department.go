package entity

type Department struct {
	ID            int    `gorm:"primaryKey" json:"Id"`
	Name          string `gorm:"not null" json:"name"`
	Description   string `gorm:"not null" json:"description"`
	Head          string `gorm:"not null" json:"head"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Location      string `json:"location"`
	Floor         string `json:"floor"`
	ContactNumber string `json:"contactNumber"`
}
