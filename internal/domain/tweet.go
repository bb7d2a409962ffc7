package domain

// Author is anything a tweet can be credited to.
type Author interface {
	// Handle returns the author's username.
	Handle() string
}

// Tweet is the contract a produced tweet must satisfy. Only these two
// fields are ever written; nothing is read back.
type Tweet interface {
	SetContent(content string)
	SetUser(user Author)
}

// TweetFactory produces a fresh, empty Tweet on every call.
type TweetFactory func() Tweet

// Post is the stock Tweet implementation.
type Post struct {
	Content string `json:"content"`
	User    Author `json:"-"`
}

// NewPost is a TweetFactory producing *Post values.
func NewPost() Tweet {
	return &Post{}
}

// SetContent implements Tweet.
func (p *Post) SetContent(content string) { p.Content = content }

// SetUser implements Tweet.
func (p *Post) SetUser(user Author) { p.User = user }

// ComposeTweet asks factory for a new tweet and fills in content and author.
// The caller owns the result; author keeps no reference to it.
func ComposeTweet(factory TweetFactory, author Author, content string) (Tweet, error) {
	if factory == nil {
		return nil, ErrNoTweetFactory
	}

	t := factory()
	if t == nil {
		return nil, ErrNilTweet
	}

	t.SetContent(content)
	t.SetUser(author)
	return t, nil
}
