package api

// PersistUserRequest is the body of PUT /api/users/{username}.
type PersistUserRequest struct {
	Name string `json:"name" validate:"max=255"`
}

// UserResponse is a Data Mapper user.
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// TweetRequest is the body of POST /api/users/{username}/tweets.
type TweetRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

// TweetResponse is a tweet produced by a user. Tweets are not stored.
type TweetResponse struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

// CreateAccountRequest is the body of POST /api/accounts.
type CreateAccountRequest struct {
	Username string `json:"username" validate:"required,max=64"`
}

// AccountResponse is an Active Record user together with its record ID.
type AccountResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
