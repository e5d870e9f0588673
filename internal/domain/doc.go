// Package domain contains the marketplace entities (services, requests,
// reviews, subscriptions, favorites, profiles, users and messages), their
// invariants, and the JSON form each record takes on disk. It is
// independent of how records are stored or who displays them.
package domain
