package cli

import (
	"context"

	"github.com/dmitrijs2005/distincto/internal/filex"
)

// Transcribe sends a recording to the speech-to-text service and prints the
// text. The recording is kept in the blob store even when transcription
// fails.
func (a *App) Transcribe(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.usage("transcribe <audio file> <field>, field one of " + noteFieldNames())
	}
	file, field := args[0], args[1]
	if _, ok := findNoteField(field); !ok {
		return a.usage("transcribe <audio file> <field>, field one of " + noteFieldNames())
	}

	audio, err := filex.ReadLimited(file, maxAttachment)
	if err != nil {
		return a.fail(ctx, "transcribe", err)
	}

	a.println("Transcribing, this can take a minute...")
	res, err := a.transcriber.TranscribeAudio(ctx, audio, field)
	if err != nil {
		return a.fail(ctx, "transcribe", err)
	}

	a.printf("Recording saved as %s\n\n%s\n", res.FileName, res.Text)
	return nil
}
