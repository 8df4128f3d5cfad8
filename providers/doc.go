// Package providers contains the shared HTTP plumbing for connection
// testers and one subpackage per supported payment provider. Every
// tester makes a single read-only call against the provider's API and
// classifies the outcome; remote rejection is reported as a failed
// result, never as an error.
package providers
