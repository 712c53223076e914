// Package transcription turns voice recordings into note text using an
// AssemblyAI-compatible speech-to-text service.
//
// A recording is first saved to the blob store under
// models.RecordingPath, so it survives any later failure. The audio is then
// uploaded, a transcript job is submitted for the returned upload URL, and
// the job is polled at a fixed interval until it completes, fails or the
// attempt ceiling is reached. Nothing is retried automatically.
package transcription
