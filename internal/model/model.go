// Package model contains the records shared by the repository, service and HTTP layers.
// No business logic lives here.
package model
