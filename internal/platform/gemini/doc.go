// Package gemini provides an implementation of the generation.NarrativeGenerator
// interface that uses Google's Gemini API for describing recommended outfits.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application's domain logic to Google's external Gemini AI
// service. It translates between the application's domain models and the
// Gemini API without exposing the details of the external service to the
// core application.
package gemini
