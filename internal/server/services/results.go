package services

import (
	"net/http"

	"github.com/dmitrijs2005/messenger/internal/server/models"
)

// Result is the envelope every successful account operation hands back to the
// transport layer: a user-facing message, an HTTP-ish status code, an optional
// client redirect hint, and the sanitized user record when one is relevant.
type Result struct {
	Message  string
	Status   int
	Redirect string
	User     *models.User
}

// SignInResult extends Result with the minted session token and a flag
// reporting whether the sign-in created a new account.
type SignInResult struct {
	Result
	AccessToken string
	Created     bool
}

// FriendshipResult reports the follow state after a graph mutation. IsFollowed
// always matches the requested action, regardless of the prior graph state.
type FriendshipResult struct {
	IsFollowed bool
}

// Canonical success outcomes. Services copy these and attach the user.
var (
	signInOK = Result{
		Message:  "Sign-in successful. Welcome back!",
		Status:   http.StatusOK,
		Redirect: "/",
	}
	accountCreated = Result{
		Message:  "Account created successfully.",
		Status:   http.StatusCreated,
		Redirect: "/",
	}
	profileUpdated = Result{
		Message: "Profile updated successfully.",
		Status:  http.StatusOK,
	}
	passwordChanged = Result{
		Message: "Password changed successfully.",
		Status:  http.StatusOK,
	}
	accountDeleted = Result{
		Message:  "Account deleted successfully.",
		Status:   http.StatusOK,
		Redirect: "/signin",
	}
)

// verifyEmailReminder is appended to the update message when the email
// address changed and needs re-verification.
const verifyEmailReminder = " Please verify your email."
