package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Role       string `json:"role"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	SchoolName string `json:"schoolName,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	UnlockedAt  string `json:"unlockedAt,omitempty"`
}

type Medal struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	MinScore int    `json:"minScore"`
}

type User struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	FirstName    string        `json:"firstName,omitempty"`
	LastName     string        `json:"lastName,omitempty"`
	Role         string        `json:"role,omitempty"`
	SchoolName   string        `json:"schoolName,omitempty"`
	Picture      string        `json:"picture,omitempty"`
	Score        int           `json:"score"`
	Achievements []Achievement `json:"achievements,omitempty"`
	CurrentMedal *Medal        `json:"currentMedal,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	SchoolName string `json:"schoolName"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type RankingUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}
