// Package domain contains the core entities of the application and their
// validation rules. Two bounded contexts live side by side and are kept
// deliberately separate: Account (a credentialed identity used by the auth
// endpoints) and Profile (a contact record with an embedded image payload).
package domain
