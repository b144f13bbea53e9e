package deadletter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stayforge/hotelops/pkg/archive"
	"github.com/stayforge/hotelops/pkg/queue"
)

// exportContentType marks exported snapshots as newline-delimited JSON.
const exportContentType = "application/x-ndjson"

// Export writes a JSONL snapshot of a sink's entries to archive storage and
// returns the stored object. An empty queue name exports every queue. The
// snapshot lands under dead-letters/<queue>/<timestamp>.jsonl so repeated
// exports never overwrite each other.
func Export(ctx context.Context, sink queue.DeadLetterSink, store archive.Storage, queueName string) (*archive.Object, error) {
	entries, err := sink.List(ctx, queueName, 0)
	if err != nil {
		return nil, errors.Join(ErrFailedToExportEntries, err)
	}
	if len(entries) == 0 {
		return nil, ErrNoEntriesToExport
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return nil, errors.Join(ErrFailedToExportEntries, err)
		}
	}

	obj, err := store.Put(ctx, exportPath(queueName, time.Now()), exportContentType, &buf)
	if err != nil {
		return nil, errors.Join(ErrFailedToExportEntries, err)
	}
	return obj, nil
}

func exportPath(queueName string, now time.Time) string {
	if queueName == "" {
		queueName = "all"
	}
	return fmt.Sprintf("dead-letters/%s/%s.jsonl", queueName, now.UTC().Format("20060102-150405"))
}
