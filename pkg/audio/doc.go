// Package audio reads, writes, and converts audio files and answers
// metadata queries about them.
//
// WAV, FLAC, MP3, and OGG files are handled in process by pure Go
// codecs. Every other audio or video format is served through external
// tools: sox where possible, ffmpeg and ffprobe as fallback. Results are
// identical regardless of which path a file takes.
package audio
