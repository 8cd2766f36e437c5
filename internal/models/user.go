package models

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
	Fullname     string `json:"fullname"`
	MobileNo     string `json:"mobileno"`
	Active       bool   `json:"active"`
}
