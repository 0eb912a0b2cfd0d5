// Package models holds the GORM database models and their conversions to
// and from domain entities. Domain packages stay free of persistence tags.
package models
