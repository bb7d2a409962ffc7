package api

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/twitter-persistence/internal/domain"
)

// UsernameParam is the chi route parameter holding a username.
const UsernameParam = "username"

// maxUsernameLength matches the username limit of CreateAccountRequest.
const maxUsernameLength = 64

// getUsernameParam extracts the username path parameter. The stores accept any
// username, so the length limit is enforced here.
func getUsernameParam(r *http.Request) (string, error) {
	username := chi.URLParam(r, UsernameParam)
	if username == "" {
		return "", fmt.Errorf("%w: path parameter %q", domain.ErrEmptyUsername, UsernameParam)
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return "", fmt.Errorf("%w: username longer than %d characters", domain.ErrValidation, maxUsernameLength)
	}
	return username, nil
}
