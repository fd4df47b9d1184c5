// Package tests provides access to the external test fixtures (test roms
// and single step CPU tests), downloading them on first use.
package tests

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

const (
	testRomsURL    = `https://github.com/christopherpow/nes-test-roms/archive/refs/heads/master.zip`
	singleStepURL  = `https://raw.githubusercontent.com/SingleStepTests/65x02/main/nes6502/v1/%s.json`
	testRomsDir    = "nes-test-roms"
	singleStepDir  = "tomharte.processor.tests"
	maxConcurrency = 16
)

// fixtures are shared by all tests of a package, download them once.
var fixturesMu sync.Mutex

func testsDir() string {
	_, b, _, _ := runtime.Caller(0)
	return filepath.Dir(b)
}

func decompress(zipFile, dest string) error {
	r, err := zip.OpenReader(zipFile)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		fname := strings.Replace(f.Name, "nes-test-roms-master", testRomsDir, 1)
		fpath := filepath.Join(dest, fname)
		if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("%s: illegal file path", fpath)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, os.ModePerm); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
			return err
		}
		if err := extract(f, fpath); err != nil {
			return err
		}
	}
	return nil
}

func extract(f *zip.File, path string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// fetch downloads url into the file at path.
func fetch(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func downloadTestRoms(tb testing.TB, dest string) {
	tmpf, err := os.CreateTemp("", "nes-test-roms-*-.zip")
	if err != nil {
		tb.Fatal(err)
	}
	tmpf.Close()
	defer os.Remove(tmpf.Name())

	if err := fetch(context.Background(), testRomsURL, tmpf.Name()); err != nil {
		tb.Fatal(err)
	}
	if err := decompress(tmpf.Name(), dest); err != nil {
		tb.Fatalf("failed to decompress test roms: %s", err)
	}
}

// RomsPath returns the directory holding the nes-test-roms collection.
func RomsPath(tb testing.TB) string {
	fixturesMu.Lock()
	defer fixturesMu.Unlock()

	romsDir := filepath.Join(testsDir(), testRomsDir)
	if _, err := os.Stat(romsDir); errors.Is(err, fs.ErrNotExist) {
		tb.Log("nes-test-roms directory not found, downloading it...")
		downloadTestRoms(tb, testsDir())
		tb.Log("Test roms downloaded in", romsDir)
	}
	return romsDir
}

// download all 256 (one per opcode) single step test files into dest dir.
func downloadSingleStepTests(tb testing.TB, dest string) {
	tempdir, err := os.MkdirTemp("", "tom.harte.processor.tests.*")
	if err != nil {
		tb.Fatal(err)
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(min(runtime.NumCPU(), maxConcurrency))

	for opcode := range 256 {
		opstr := fmt.Sprintf("%02x", opcode)
		g.Go(func() error {
			url := fmt.Sprintf(singleStepURL, opstr)
			return fetch(ctx, url, filepath.Join(tempdir, opstr+".json"))
		})
	}

	if err := g.Wait(); err != nil {
		os.RemoveAll(tempdir)
		tb.Fatalf("failed to download all files: %s", err)
	}
	if err := os.Rename(tempdir, dest); err != nil {
		tb.Fatal(err)
	}
}

// TomHarteProcTestsPath returns the directory holding the single step
// tests, one JSON file per opcode.
func TomHarteProcTestsPath(tb testing.TB) string {
	fixturesMu.Lock()
	defer fixturesMu.Unlock()

	dir := filepath.Join(testsDir(), singleStepDir)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		tb.Log("tomharte.processor.tests directory not found, downloading it...")
		downloadSingleStepTests(tb, dir)
		tb.Log("Tom Harte Processor Tests downloaded in", dir)
	}
	return dir
}
