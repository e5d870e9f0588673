// Package auth hashes account passwords and issues verification codes.
package auth
