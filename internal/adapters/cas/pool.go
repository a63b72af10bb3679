// Package cas implements the content addressed bundle pool.
package cas

import (
	"context"
	"crypto/md5" //nolint:gosec // p2 repositories still publish md5 checksums
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
)

const httpClientTimeout = 5 * time.Minute

// Pool implements ports.ArtifactPool. Downloads are keyed by URL and kept below root.
type Pool struct {
	root       string
	httpClient *http.Client
	logger     ports.Logger

	mu    sync.RWMutex
	index map[string]entry
}

type entry struct {
	File      string    `json:"file"`
	Size      int64     `json:"size"`
	SHA256    string    `json:"sha256,omitempty"`
	FetchedAt time.Time `json:"fetchedAt"`
}

var _ ports.ArtifactPool = (*Pool)(nil)

// NewPool opens the pool at root, creating it when missing.
func NewPool(root string, client *http.Client, logger ports.Logger) (*Pool, error) {
	cleanRoot := filepath.Clean(root)
	if err := os.MkdirAll(cleanRoot, domain.DirPerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrPoolWriteFailed, err), "path", cleanRoot)
	}
	if client == nil {
		client = &http.Client{Timeout: httpClientTimeout}
	}

	p := &Pool{
		root:       cleanRoot,
		httpClient: client,
		logger:     logger,
		index:      make(map[string]entry),
	}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

// Root returns the pool directory.
func (p *Pool) Root() string {
	return p.root
}

func (p *Pool) indexPath() string {
	return filepath.Join(p.root, domain.PoolIndexFileName)
}

func (p *Pool) load() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(p.indexPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Join(domain.ErrPoolIndexFailed, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &p.index); err != nil {
		// A corrupted index only costs downloads.
		p.index = make(map[string]entry)
	}
	return nil
}

// Fetch implements ports.ArtifactPool.
func (p *Pool) Fetch(ctx context.Context, artifact domain.RemoteArtifact, fileName string) (string, error) {
	u, err := url.Parse(artifact.URL)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrArtifactDownloadFailed, err), "url", artifact.URL)
	}

	if u.Scheme == "" || u.Scheme == "file" {
		return p.local(u, artifact)
	}

	if path, ok := p.lookup(artifact); ok {
		return path, nil
	}

	return p.download(ctx, artifact, fileName)
}

// local verifies an artifact that already lives on disk and returns its path unchanged.
func (p *Pool) local(u *url.URL, artifact domain.RemoteArtifact) (string, error) {
	path := u.Path
	if u.Scheme == "" {
		path = artifact.URL
	}
	path = filepath.FromSlash(path)

	f, err := os.Open(path) //nolint:gosec // path comes from a declared repository
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrArtifactNotFound, err), "path", path)
	}
	defer func() { _ = f.Close() }()

	if err := verify(f, artifact); err != nil {
		return "", zerr.With(err, "path", path)
	}
	return path, nil
}

func (p *Pool) lookup(artifact domain.RemoteArtifact) (string, bool) {
	p.mu.RLock()
	e, ok := p.index[artifact.URL]
	p.mu.RUnlock()
	if !ok {
		return "", false
	}
	if artifact.SHA256 != "" && e.SHA256 != "" && !strings.EqualFold(artifact.SHA256, e.SHA256) {
		return "", false
	}

	path := filepath.Join(p.root, e.File)
	info, err := os.Stat(path)
	if err != nil || info.Size() != e.Size {
		return "", false
	}
	return path, true
}

func (p *Pool) download(ctx context.Context, artifact domain.RemoteArtifact, fileName string) (string, error) {
	fail := func(err error) error {
		return zerr.With(errors.Join(domain.ErrArtifactDownloadFailed, err), "url", artifact.URL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, artifact.URL, http.NoBody)
	if err != nil {
		return "", fail(err)
	}

	p.logger.Debug("Downloading " + artifact.URL)
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fail(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", zerr.With(zerr.With(domain.ErrArtifactDownloadFailed, "url", artifact.URL), "status_code", resp.StatusCode)
	}

	dir := filepath.Join(p.root, strconv.FormatUint(xxhash.Sum64String(artifact.URL), 16))
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", errors.Join(domain.ErrPoolWriteFailed, err)
	}

	tmp, err := os.CreateTemp(dir, "download-*")
	if err != nil {
		return "", errors.Join(domain.ErrPoolWriteFailed, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	sha := sha256.New()
	md := md5.New() //nolint:gosec // see import
	size, err := io.Copy(io.MultiWriter(tmp, sha, md), resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fail(err)
	}

	if err := checkSums(artifact, hex.EncodeToString(sha.Sum(nil)), hex.EncodeToString(md.Sum(nil))); err != nil {
		return "", zerr.With(err, "url", artifact.URL)
	}
	if artifact.Size > 0 && size != artifact.Size {
		return "", zerr.With(zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, "size differs"),
			"expected", artifact.Size), "actual", size)
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return "", errors.Join(domain.ErrPoolWriteFailed, err)
	}
	target := filepath.Join(dir, filepath.Base(fileName))
	if err := os.Rename(tmpName, target); err != nil {
		return "", errors.Join(domain.ErrPoolWriteFailed, err)
	}

	p.logger.Info(fmt.Sprintf("Downloaded %s (%s)", filepath.Base(fileName), humanize.Bytes(uint64(size)))) //nolint:gosec // size is non-negative

	rel, err := filepath.Rel(p.root, target)
	if err != nil {
		return "", errors.Join(domain.ErrPoolIndexFailed, err)
	}
	if err := p.remember(artifact.URL, entry{
		File:      rel,
		Size:      size,
		SHA256:    hex.EncodeToString(sha.Sum(nil)),
		FetchedAt: time.Now().UTC(),
	}); err != nil {
		return "", err
	}

	return target, nil
}

func (p *Pool) remember(key string, e entry) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.index[key] = e
	data, err := json.MarshalIndent(p.index, "", "  ")
	if err != nil {
		return errors.Join(domain.ErrPoolIndexFailed, err)
	}
	if err := atomicWriteFile(p.indexPath(), data); err != nil {
		return errors.Join(domain.ErrPoolIndexFailed, err)
	}
	return nil
}

// verify checks an on-disk artifact against its published checksums.
func verify(r io.Reader, artifact domain.RemoteArtifact) error {
	if artifact.SHA256 == "" && artifact.MD5 == "" {
		return nil
	}

	var h hash.Hash
	if artifact.SHA256 != "" {
		h = sha256.New()
	} else {
		h = md5.New() //nolint:gosec // see import
	}
	if _, err := io.Copy(h, r); err != nil {
		return errors.Join(domain.ErrArtifactDownloadFailed, err)
	}

	sum := hex.EncodeToString(h.Sum(nil))
	if artifact.SHA256 != "" {
		return checkSums(artifact, sum, "")
	}
	return checkSums(artifact, "", sum)
}

// checkSums prefers sha-256 and falls back to md5.
func checkSums(artifact domain.RemoteArtifact, sha, md string) error {
	switch {
	case artifact.SHA256 != "":
		if !strings.EqualFold(artifact.SHA256, sha) {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, "sha-256 differs"),
				"expected", artifact.SHA256), "actual", sha)
		}
	case artifact.MD5 != "":
		if !strings.EqualFold(artifact.MD5, md) {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, "md5 differs"),
				"expected", artifact.MD5), "actual", md)
		}
	}
	return nil
}

// atomicWriteFile writes data to a temp file and renames it over path.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "index-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
