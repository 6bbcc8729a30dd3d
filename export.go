package gitfolio

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/zstd"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// exportConcurrency bounds the parallel asset fetches during Export.
const exportConcurrency = 4

type archiveEntry struct {
	path string
	data []byte
}

// Export writes a point-in-time snapshot of the collection — the document
// plus every image asset it references — as a zstd-compressed tarball.
// Assets are fetched in parallel; ones that no longer exist in the
// repository are skipped rather than failing the whole export.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	doc, err := s.GetFile(ctx, DocumentPath)
	if err != nil {
		return fmt.Errorf("read collection: %w", err)
	}

	projects, err := s.Projects(ctx)
	if err != nil {
		return err
	}

	paths := assetPaths(projects)

	p := pool.NewWithResults[*archiveEntry]().WithContext(ctx).WithMaxGoroutines(exportConcurrency)
	for _, path := range paths {
		path := path
		p.Go(func(ctx context.Context) (*archiveEntry, error) {
			file, err := s.GetFile(ctx, path)
			if err != nil {
				return nil, fmt.Errorf("fetch asset %s: %w", path, err)
			}
			if file.Revision == "" {
				// Referenced but missing from the repository.
				s.logger.Warn("skipping missing asset", zap.String("path", path))
				return nil, nil
			}
			return &archiveEntry{path: path, data: file.Content}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return err
	}

	entries := []archiveEntry{{path: DocumentPath, data: doc.Content}}
	for _, r := range results {
		if r != nil {
			entries = append(entries, *r)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].path < entries[j].path })

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create compressor: %w", err)
	}
	tw := tar.NewWriter(zw)

	for _, e := range entries {
		hdr := &tar.Header{
			Name:    e.path,
			Mode:    0644,
			Size:    int64(len(e.data)),
			ModTime: s.now(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("write header %s: %w", e.path, err)
		}
		if _, err := tw.Write(e.data); err != nil {
			return fmt.Errorf("write entry %s: %w", e.path, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return zw.Close()
}

// assetPaths collects every repository path referenced from project images,
// deduplicated.
func assetPaths(projects []Project) []string {
	seen := make(map[string]struct{})
	var paths []string
	add := func(p string) {
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, p := range projects {
		if p.Images == nil {
			continue
		}
		add(p.Images.Hero)
		add(p.Images.Thumbnail)
		for _, g := range p.Images.Gallery {
			add(g)
		}
	}
	return paths
}
