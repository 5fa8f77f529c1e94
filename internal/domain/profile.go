package domain

type DriverLicense struct {
	Number         string `json:"number" validate:"required,max=10,number"`
	ExpirationDate string `json:"expirationDate" validate:"required,us_date"`
	ImageURL       string `json:"imageUrl" validate:"required,url"`
}
