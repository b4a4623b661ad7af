// Package processor executes the post-install steps a Forge-family
// installer declares: external Java invocations that patch and generate
// client files. Completed steps are flagged in the persisted descriptor so
// an interrupted install resumes where it stopped.
package processor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"launchmc/archive"
	"launchmc/config"
	"launchmc/errs"
	"launchmc/maven"
	"launchmc/meta"
)

// Run executes every pending client-side processor of desc in order. Each
// step's completion flag is written back to the version descriptor on disk
// immediately after it succeeds, so a crash mid-sequence never repeats
// finished work. A step that exits non-zero fails the run with its stderr.
func Run(ctx context.Context, desc *meta.VersionMeta, cfg *config.Config) error {
	if len(desc.Processors) == 0 {
		return nil
	}

	javaPath, err := cfg.JavaPath(desc.JavaVersion)
	if err != nil {
		return fmt.Errorf("locate java: %w", err)
	}

	total := len(desc.Processors)
	for i := range desc.Processors {
		p := &desc.Processors[i]
		if !clientSide(p.Sides) || p.Success {
			continue
		}
		log.Info("running processor", "jar", p.Jar, "step", i+1, "total", total)

		if err := runOne(ctx, p, desc, cfg, javaPath); err != nil {
			return err
		}

		p.Success = true
		if err := meta.WriteJSON(cfg.VersionJSONPath(), desc); err != nil {
			return fmt.Errorf("persist descriptor: %w", err)
		}
	}
	return nil
}

func runOne(ctx context.Context, p *meta.Processor, desc *meta.VersionMeta, cfg *config.Config, javaPath string) error {
	jarPath, err := artifactPath(cfg, p.Jar)
	if err != nil {
		return fmt.Errorf("processor jar %s: %w", p.Jar, err)
	}

	classpath := make([]string, 0, len(p.Classpath)+1)
	for _, coord := range p.Classpath {
		cp, err := artifactPath(cfg, coord)
		if err != nil {
			return fmt.Errorf("processor classpath %s: %w", coord, err)
		}
		classpath = append(classpath, cp)
	}
	classpath = append(classpath, jarPath)

	mainClass, err := manifestMainClass(jarPath)
	if err != nil {
		return err
	}

	args := make([]string, 0, len(p.Args)+3)
	args = append(args, "-cp", strings.Join(classpath, string(os.PathListSeparator)), mainClass)
	for _, arg := range p.Args {
		resolved, err := resolveArg(arg, desc, cfg)
		if err != nil {
			return fmt.Errorf("processor %s: %w", p.Jar, err)
		}
		args = append(args, resolved)
	}

	cmd := exec.CommandContext(ctx, javaPath, args...)
	cmd.Dir = cfg.GameDir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errs.Failf("processor %s: %v: %s", p.Jar, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// clientSide reports whether a step applies to the client install. An
// absent sides list means both sides.
func clientSide(sides []string) bool {
	if len(sides) == 0 {
		return true
	}
	for _, side := range sides {
		if side == "client" {
			return true
		}
	}
	return false
}

// artifactPath maps a Maven coordinate to its location in the library tree.
func artifactPath(cfg *config.Config, coordinate string) (string, error) {
	rel, err := maven.Path(coordinate)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.LibrariesPath(), filepath.FromSlash(rel)), nil
}

// manifestMainClass reads the Main-Class attribute from a jar's manifest.
func manifestMainClass(jarPath string) (string, error) {
	manifest, err := archive.ReadEntry(jarPath, "META-INF/MANIFEST.MF")
	if err != nil {
		return "", fmt.Errorf("read manifest of %s: %w", jarPath, err)
	}
	for _, line := range strings.Split(manifest, "\n") {
		if value, ok := strings.CutPrefix(line, "Main-Class:"); ok {
			return strings.TrimSpace(value), nil
		}
	}
	return "", errs.NotFoundf("Main-Class of processor %s", jarPath)
}

// resolveArg expands one processor argument: {NAME} substitutes the data
// variable's client value, and a [coordinate] (directly or via the
// substitution) resolves to the artifact's path in the library tree.
func resolveArg(arg string, desc *meta.VersionMeta, cfg *config.Config) (string, error) {
	if strings.HasPrefix(arg, "{") && strings.HasSuffix(arg, "}") {
		key := strings.Trim(arg, "{}")
		// A name with no substitution passes through literally; some
		// processors consume their own placeholder tokens.
		if entry, ok := desc.Data[key]; ok {
			arg = entry.Client
		}
	}
	if strings.HasPrefix(arg, "[") && strings.HasSuffix(arg, "]") {
		return artifactPath(cfg, strings.Trim(arg, "[]"))
	}
	return arg, nil
}
