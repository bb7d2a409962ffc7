// Package api exposes both persistence styles over HTTP. UserHandler serves
// /api/users through the Data Mapper, AccountHandler serves /api/accounts
// through the Active Record model. Handlers translate store and domain errors
// into status codes with MapErrorToStatusCode and never echo internal errors
// to clients.
package api
