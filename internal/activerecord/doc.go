// Package activerecord implements the Active Record side of the persistence
// comparison. A User saves itself, and the Model it was built from answers
// class-level questions (all users, truncate, lookup) against the backend the
// Model was constructed with.
//
// A Model built without a backend delegates to store.Placeholder, so every
// persistence call fails with store.ErrNoBackend until a real store is wired in.
package activerecord
