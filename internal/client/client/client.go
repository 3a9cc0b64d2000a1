package client

import (
	"context"

	"github.com/dmitrijs2005/cpguide/internal/client/models"
)

// Client is the backend API used by the services.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Signup(ctx context.Context, req SignupRequest) (any, error)
	Progress(ctx context.Context) (*ProgressResponse, error)
}

// TokenStore is where the client reads the bearer token at construction and
// which it clears on 401.
type TokenStore interface {
	Token(ctx context.Context) (string, bool, error)
	ClearToken(ctx context.Context) error
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body of POST /user/login.
type LoginResponse struct {
	Token string     `json:"token"`
	User  *LoginUser `json:"user"`
}

type LoginUser struct {
	FirstName      string                `json:"fName"`
	LastName       string                `json:"lName"`
	SolvedProblems models.SolvedIndex    `json:"solvedProblems"`
	Progress       models.ProgressRecord `json:"progress"`
}

// SignupRequest is the body of POST /user/signup.
type SignupRequest struct {
	FirstName string `json:"fName"`
	LastName  string `json:"lName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// ProgressResponse is the body of GET /progress.
type ProgressResponse struct {
	UserProgress *UserProgress `json:"userProgress"`
}

type UserProgress struct {
	ProblemsProgress models.SolvedIndex    `json:"problemsProgress"`
	TopicProgress    models.ProgressRecord `json:"topicProgress"`
}
