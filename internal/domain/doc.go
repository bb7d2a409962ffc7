// Package domain contains the persistence-ignorant core of the application:
// the User entity, the Tweet contract and the factory that produces tweets.
// Nothing here knows how or where users are stored.
package domain
