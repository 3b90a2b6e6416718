package natearth

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Fetcher resolves dataset archives against a local cache directory,
// downloading and extracting them on first use.
type Fetcher struct {
	DataDir string
	BaseURL string
	Client  *http.Client
	Log     *zap.Logger
}

func NewFetcher(dataDir, baseURL string, log *zap.Logger) *Fetcher {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		DataDir: dataDir,
		BaseURL: baseURL,
		Client:  http.DefaultClient,
		Log:     log,
	}
}

// Ensure returns the path to the dataset's .shp layer, downloading the
// archive only if it is not already cached. When the archive file exists no
// network request is made.
func (f *Fetcher) Ensure(ctx context.Context, ds Dataset) (string, error) {
	zipPath := filepath.Join(f.DataDir, ds.Archive)
	if st, err := os.Stat(zipPath); err == nil {
		f.Log.Info("dataset cached",
			zap.String("dataset", ds.ID),
			zap.String("archive", zipPath),
			zap.Float64("size_mb", float64(st.Size())/(1024*1024)))
		return f.extract(zipPath, ds)
	}

	if err := os.MkdirAll(f.DataDir, 0o755); err != nil {
		return "", fmt.Errorf("natearth: %w", err)
	}
	url := f.BaseURL + ds.Archive
	f.Log.Info("downloading dataset", zap.String("dataset", ds.ID), zap.String("url", url))
	if err := f.download(ctx, url, zipPath); err != nil {
		return "", fmt.Errorf("natearth: download %s: %w", ds.ID, err)
	}
	if st, err := os.Stat(zipPath); err == nil {
		f.Log.Info("download complete",
			zap.String("dataset", ds.ID),
			zap.Float64("size_mb", float64(st.Size())/(1024*1024)))
	}
	return f.extract(zipPath, ds)
}

// download writes the archive through a temp file so an interrupted transfer
// never looks like a cache hit on the next run.
func (f *Fetcher) download(ctx context.Context, url, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	tmp := dst + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

// extract unpacks the archive next to it and returns the .shp path. Already
// extracted archives are not unpacked again.
func (f *Fetcher) extract(zipPath string, ds Dataset) (string, error) {
	base := strings.TrimSuffix(ds.Archive, ".zip")
	dir := filepath.Join(f.DataDir, base)
	shpPath := filepath.Join(dir, base+".shp")
	if _, err := os.Stat(shpPath); err == nil {
		return shpPath, nil
	}

	rz, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("natearth: open %s: %w", zipPath, err)
	}
	defer rz.Close()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("natearth: %w", err)
	}
	for _, zf := range rz.File {
		name := filepath.Base(zf.Name)
		if name == "" || zf.FileInfo().IsDir() {
			continue
		}
		if err := writeZipFile(zf, filepath.Join(dir, name)); err != nil {
			return "", fmt.Errorf("natearth: extract %s: %w", zf.Name, err)
		}
	}
	if _, err := os.Stat(shpPath); err != nil {
		return "", fmt.Errorf("natearth: archive %s has no %s.shp", zipPath, base)
	}
	return shpPath, nil
}

func writeZipFile(zf *zip.File, dst string) error {
	in, err := zf.Open()
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
