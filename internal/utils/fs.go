package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// AssetRoot is the directory holding model/, snowflake/ and skybox textures.
	AssetRoot = "assets"
	// CacheDir receives the unpacked asset bundle and converted textures.
	CacheDir = "tmp"
)

var errFound = errors.New("found")

// TextureExtensions are tried in order when a texture name has no usable file.
var TextureExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".webp", ".dds", ".tex"}

func searchRoots() []string {
	roots := []string{}
	if CacheDir != "" {
		roots = append(roots, filepath.Join(CacheDir, "converted"), CacheDir)
	}
	if AssetRoot != "" {
		roots = append(roots, AssetRoot)
	}
	return roots
}

func exists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// ResolveAssetPath returns the first existing location of relPath, preferring the
// unpacked bundle over the asset root. Falls back to the asset root path even if missing.
func ResolveAssetPath(relPath string) string {
	if filepath.IsAbs(relPath) {
		return relPath
	}

	for _, root := range searchRoots() {
		p := filepath.Join(root, relPath)
		if exists(p) {
			return p
		}
	}

	return filepath.Join(AssetRoot, relPath)
}

// FindTextureFile locates a texture by name. Converted PNGs win over packed
// .dds/.tex sources so a texture is only decoded once.
func FindTextureFile(name string) string {
	if name == "" {
		return ""
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for _, root := range searchRoots() {
		if ext != "" {
			if p := filepath.Join(root, name); exists(p) {
				return p
			}
		}
		for _, e := range TextureExtensions {
			p := filepath.Join(root, stem+e)
			if exists(p) {
				return p
			}
		}
	}

	// Deep search by base name, for bundles that flatten directories.
	target := filepath.Base(stem)
	var foundPath string
	for _, root := range searchRoots() {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			base := filepath.Base(path)
			e := filepath.Ext(base)
			if strings.TrimSuffix(base, e) == target && isTextureExt(e) {
				foundPath = path
				return errFound
			}
			return nil
		})
		if foundPath != "" {
			break
		}
	}

	return foundPath
}

func isTextureExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range TextureExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ConvertedPath is where a decoded .tex/.dds texture is cached as PNG.
func ConvertedPath(source string) string {
	base := filepath.Base(source)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	dir := filepath.Dir(source)
	for _, root := range []string{CacheDir, AssetRoot} {
		if root == "" {
			continue
		}
		rel, err := filepath.Rel(root, dir)
		if err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.Join(CacheDir, "converted", rel, name)
		}
	}
	return filepath.Join(CacheDir, "converted", name)
}
