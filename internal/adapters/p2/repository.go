// Package p2 reads p2 repositories and resolves installable units against them.
package p2

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Lookup order of repository index files. The composite variant wins over the simple one.
var (
	metadataFiles  = []string{"compositeContent.jar", "compositeContent.xml", "content.jar", "content.xml"}
	artifactsFiles = []string{"compositeArtifacts.jar", "compositeArtifacts.xml", "artifacts.jar", "artifacts.xml"}
)

// Repository is the loaded content of one declared p2 repository, composite children included.
type Repository struct {
	Ref       domain.RepositoryRef
	Units     []*domain.InstallableUnit
	Artifacts map[string]domain.RemoteArtifact
}

// Reader loads p2 repositories over http(s) or from the file system.
type Reader struct {
	client *http.Client
	logger ports.Logger
}

// NewReader creates a Reader. A nil client uses http.DefaultClient.
func NewReader(client *http.Client, logger ports.Logger) *Reader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Reader{client: client, logger: logger}
}

// LoadAll loads refs concurrently. The result keeps the order of refs.
func (r *Reader) LoadAll(ctx context.Context, refs []domain.RepositoryRef) ([]*Repository, error) {
	repos := make([]*Repository, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			repo, err := r.Load(ctx, ref)
			if err != nil {
				return err
			}
			repos[i] = repo
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return repos, nil
}

// Load reads the metadata and artifact index of ref.
func (r *Reader) Load(ctx context.Context, ref domain.RepositoryRef) (*Repository, error) {
	fail := func(err error) error {
		return zerr.With(zerr.With(errors.Join(domain.ErrRepositoryLoadFailed, err), "repository", ref.ID), "url", ref.URL)
	}

	loc, err := parseLocation(ref.URL)
	if err != nil {
		return nil, fail(err)
	}

	r.logger.Debug("Loading p2 repository " + loc.String())
	repo := &Repository{Ref: ref, Artifacts: make(map[string]domain.RemoteArtifact)}
	if err := r.loadMetadata(ctx, loc, repo, make(map[string]bool)); err != nil {
		return nil, fail(err)
	}
	if err := r.loadArtifacts(ctx, loc, repo, make(map[string]bool)); err != nil {
		return nil, fail(err)
	}
	return repo, nil
}

func (r *Reader) loadMetadata(ctx context.Context, loc *url.URL, repo *Repository, visited map[string]bool) error {
	if visited[loc.String()] {
		return nil
	}
	visited[loc.String()] = true

	doc, name, err := r.readIndex(ctx, loc, metadataFiles)
	if err != nil {
		return err
	}
	if strings.HasPrefix(name, "composite") {
		for _, child := range doc.Children {
			childLoc, err := resolveChild(loc, child.Location)
			if err != nil {
				return err
			}
			if err := r.loadMetadata(ctx, childLoc, repo, visited); err != nil {
				return err
			}
		}
		return nil
	}

	for i := range doc.Units {
		u, err := doc.Units[i].toUnit()
		if err != nil {
			return zerr.With(err, "location", loc.String())
		}
		repo.Units = append(repo.Units, u)
	}
	return nil
}

func (r *Reader) loadArtifacts(ctx context.Context, loc *url.URL, repo *Repository, visited map[string]bool) error {
	if visited[loc.String()] {
		return nil
	}
	visited[loc.String()] = true

	doc, name, err := r.readIndex(ctx, loc, artifactsFiles)
	if err != nil {
		return err
	}
	if strings.HasPrefix(name, "composite") {
		for _, child := range doc.Children {
			childLoc, err := resolveChild(loc, child.Location)
			if err != nil {
				return err
			}
			if err := r.loadArtifacts(ctx, childLoc, repo, visited); err != nil {
				return err
			}
		}
		return nil
	}

	for i := range doc.Artifacts {
		a := &doc.Artifacts[i]
		if a.Classifier != domain.ClassifierBundle {
			continue
		}
		remote, ok := a.remoteArtifact(doc.Rules, loc.String(), repo.Ref.ID)
		if !ok {
			continue
		}
		key := a.ID + "_" + a.Version
		if _, seen := repo.Artifacts[key]; !seen {
			repo.Artifacts[key] = remote
		}
	}
	return nil
}

// readIndex returns the first of names that exists below loc.
func (r *Reader) readIndex(ctx context.Context, loc *url.URL, names []string) (*xmlRepository, string, error) {
	for _, name := range names {
		data, found, err := r.fetch(ctx, loc, name)
		if err != nil {
			return nil, "", err
		}
		if !found {
			continue
		}

		var body io.Reader = bytes.NewReader(data)
		if strings.HasSuffix(name, ".jar") {
			body, err = jarEntry(data, strings.TrimSuffix(name, ".jar")+".xml")
			if err != nil {
				return nil, "", zerr.With(err, "file", name)
			}
		}

		doc, err := decodeRepository(body)
		if err != nil {
			return nil, "", zerr.With(zerr.With(zerr.Wrap(err, "malformed repository index"), "file", name), "location", loc.String())
		}
		return doc, name, nil
	}
	return nil, "", zerr.With(zerr.New("no repository index found"), "location", loc.String())
}

func (r *Reader) fetch(ctx context.Context, loc *url.URL, name string) ([]byte, bool, error) {
	if loc.Scheme == "file" {
		data, err := os.ReadFile(filepath.Join(filepath.FromSlash(loc.Path), name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, false, nil
			}
			return nil, false, err
		}
		return data, true, nil
	}

	target := loc.JoinPath(name).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, false, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return nil, false, nil
	default:
		return nil, false, zerr.With(zerr.With(zerr.New("unexpected http status"), "url", target), "status_code", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// jarEntry extracts entry from the zip archive data.
func jarEntry(data []byte, entry string) (io.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, zerr.Wrap(err, "malformed jar")
	}
	f, err := openEntry(zr, entry)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, zerr.Wrap(err, "malformed jar")
	}
	return bytes.NewReader(content), nil
}

func openEntry(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, zerr.With(zerr.Wrap(fs.ErrNotExist, "jar entry missing"), "entry", name)
}

// parseLocation turns a repository URL or a bare path into a URL.
func parseLocation(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "file") {
		if u.Scheme == "file" && u.Path == "" {
			u.Path = u.Opaque
			u.Opaque = ""
		}
		u.Path = strings.TrimSuffix(u.Path, "/")
		return u, nil
	}

	abs, absErr := filepath.Abs(raw)
	if absErr != nil {
		return nil, absErr
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, nil
}

// resolveChild resolves a composite child location against its parent.
func resolveChild(parent *url.URL, child string) (*url.URL, error) {
	if u, err := url.Parse(child); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return parseLocation(child)
	}
	if filepath.IsAbs(child) {
		return parseLocation(child)
	}
	u := *parent
	u.Path = strings.TrimSuffix(path.Join(parent.Path, child), "/")
	return &u, nil
}
