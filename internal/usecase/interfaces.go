package usecase

import "context"

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (idToken, uid string, err error)
	DeleteUser(ctx context.Context, uid string) error
}

// AuthStateStream is the reactive current-user stream of the identity
// provider. An empty uid means signed out.
type AuthStateStream interface {
	OnAuthStateChanged(fn func(uid string)) (unsubscribe func())
	CurrentUser(ctx context.Context) (string, error)
	SetSignedIn(uid string)
	SetSignedOut()
}
