package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
)

// Multipart field names consumed by the upload receiver.
const (
	fieldName  = "name"
	fieldIcon  = "icon"
	fieldModel = "model"
)

// maxNameBytes caps the "name" text field.
const maxNameBytes = 1 << 10

// ReceivedUpload is the fixed-shape result of terminating a multipart upload
// request: the requested item name and one stored file per asset field.
type ReceivedUpload struct {
	Name  string
	Icon  *StoredFile
	Model *StoredFile
}

// files returns the stored files present so far, for cleanup.
func (u *ReceivedUpload) files() []*StoredFile {
	var out []*StoredFile
	if u.Icon != nil {
		out = append(out, u.Icon)
	}
	if u.Model != nil {
		out = append(out, u.Model)
	}
	return out
}

// uploadReceiver terminates a multipart stream, validating each file part as
// it arrives and streaming it straight into its routed blob store. The
// operation is all-or-nothing at the file level: any failure deletes every
// file written so far before the error is returned.
type uploadReceiver struct {
	stores   map[string]BlobStore
	maxBytes int64
}

func (r *uploadReceiver) receive(ctx context.Context, mr *multipart.Reader) (*ReceivedUpload, error) {
	up := &ReceivedUpload{}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			r.discard(ctx, up.files())
			return nil, fmt.Errorf("read multipart stream: %w", err)
		}

		switch part.FormName() {
		case fieldName:
			name, err := readTextField(part)
			if err != nil {
				r.discard(ctx, up.files())
				return nil, err
			}
			up.Name = name

		case fieldIcon:
			if up.Icon != nil {
				part.Close()
				r.discard(ctx, up.files())
				return nil, fmt.Errorf("%w: repeated %q part", ErrInvalidFileType, fieldIcon)
			}
			stored, err := r.storePart(ctx, CategoryIcon, part)
			if err != nil {
				r.discard(ctx, up.files())
				return nil, err
			}
			up.Icon = stored

		case fieldModel:
			if up.Model != nil {
				part.Close()
				r.discard(ctx, up.files())
				return nil, fmt.Errorf("%w: repeated %q part", ErrInvalidFileType, fieldModel)
			}
			stored, err := r.storePart(ctx, CategoryModel, part)
			if err != nil {
				r.discard(ctx, up.files())
				return nil, err
			}
			up.Model = stored

		default:
			// Unknown parts are drained and ignored.
			io.Copy(io.Discard, part)
		}
		part.Close()
	}

	if up.Icon == nil || up.Model == nil {
		r.discard(ctx, up.files())
		return nil, fmt.Errorf("%w: both %q and %q files are required", ErrMissingField, fieldIcon, fieldModel)
	}

	return up, nil
}

// storePart validates one file part and streams it into its routed store.
// Rejection before the first byte leaves no partial write; a failure during
// the write deletes whatever landed on disk.
func (r *uploadReceiver) storePart(ctx context.Context, category Category, part *multipart.Part) (*StoredFile, error) {
	classification, err := Classify(category, part.Header.Get("Content-Type"), part.FileName())
	if err != nil {
		return nil, err
	}

	ref, err := RouteFile(classification)
	if err != nil {
		return nil, err
	}

	store, ok := r.stores[ref.Backend]
	if !ok {
		return nil, fmt.Errorf("no blob store registered for backend %q", ref.Backend)
	}

	capped := &cappedReader{r: part, remaining: r.maxBytes + 1}
	if err := store.Upload(ctx, ref.GeneratedName, capped); err != nil {
		// The failed write may have left a partial file behind.
		store.Delete(ctx, ref.GeneratedName)
		if errors.Is(err, ErrFileTooLarge) {
			return nil, fmt.Errorf("%w: %q exceeds %d bytes", ErrFileTooLarge, part.FileName(), r.maxBytes)
		}
		return nil, err
	}

	return &StoredFile{
		Category:      category,
		GeneratedName: ref.GeneratedName,
		Path:          publicPath(ref.Backend, ref.GeneratedName),
		DeclaredType:  classification.MediaType,
		Size:          capped.count,
	}, nil
}

// discard removes stored files on a failure path. A file already gone is not
// an error worth surfacing.
func (r *uploadReceiver) discard(ctx context.Context, files []*StoredFile) {
	for _, f := range files {
		backend, err := backendFor(f.Category)
		if err != nil {
			continue
		}
		if store, ok := r.stores[backend]; ok {
			store.Delete(ctx, f.GeneratedName)
		}
	}
}

func readTextField(part *multipart.Part) (string, error) {
	data, err := io.ReadAll(io.LimitReader(part, maxNameBytes))
	if err != nil {
		return "", fmt.Errorf("read %q field: %w", part.FormName(), err)
	}
	return strings.TrimSpace(string(data)), nil
}

// cappedReader counts bytes and fails the stream with ErrFileTooLarge once
// the cap is crossed, so oversize uploads are cut off during the write rather
// than inspected after it. remaining is initialized to the cap plus one: a
// file of exactly the cap reads through cleanly, one more byte trips the
// error on the next read.
type cappedReader struct {
	r         io.Reader
	remaining int64
	count     int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining <= 0 {
		return 0, ErrFileTooLarge
	}
	if int64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	c.count += int64(n)
	return n, err
}
