package dto

type VerifyInput struct {
	Token string `json:"token"`
}

type VerifyOutput struct {
	Success bool         `json:"success"`
	Decoded DecodedToken `json:"decoded"`
}

type DecodedToken struct {
	ID string `json:"id"`
}
