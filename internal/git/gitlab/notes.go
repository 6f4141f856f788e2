package gitlab

import (
	"context"
	"fmt"
	"log/slog"

	"gitlab.com/gitlab-org/api/client-go"
)

// PostMergeRequestNote posts body as a note on merge request !mrIID of project
func PostMergeRequestNote(ctx context.Context, client *gitlab.Client, project string, mrIID int64, body string) error {
	opts := &gitlab.CreateMergeRequestNoteOptions{
		Body: &body,
	}

	note, _, err := client.Notes.CreateMergeRequestNote(project, mrIID, opts, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to post note to MR !%d in %s: %w", mrIID, project, err)
	}

	slog.Info("Posted report to GitLab merge request", "project", project, "mr_iid", mrIID, "note_id", note.ID)
	return nil
}
