// Package meta holds the remote metadata documents the installer consumes
// and the resolved version descriptor it persists: the vanilla version
// manifest, per-version metadata, asset indexes, Java runtime manifests and
// loader profile documents.
package meta

import "encoding/json"

// VersionManifest lists every published game version.
type VersionManifest struct {
	Latest   ManifestLatest    `json:"latest"`
	Versions []ManifestVersion `json:"versions"`
}

// ManifestLatest names the newest release and snapshot ids.
type ManifestLatest struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

// ManifestVersion is one entry of the version manifest.
type ManifestVersion struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time,omitempty"`
	ReleaseTime string `json:"releaseTime,omitempty"`
}

// VersionMeta is the resolved version descriptor. It starts as the vanilla
// per-version metadata, is mutated in place by a loader merge, and is then
// persisted as versions/<name>/<name>.json. Data and Processors are only
// populated by Forge-family loaders.
type VersionMeta struct {
	ID          string               `json:"id"`
	MainClass   string               `json:"mainClass"`
	Arguments   *Arguments           `json:"arguments,omitempty"`
	AssetIndex  AssetIndexRef        `json:"assetIndex"`
	Assets      string               `json:"assets,omitempty"`
	Downloads   Downloads            `json:"downloads"`
	JavaVersion *JavaVersion         `json:"javaVersion,omitempty"`
	Libraries   []Library            `json:"libraries"`
	Type        string               `json:"type,omitempty"`
	Data        map[string]DataEntry `json:"data,omitempty"`
	Processors  []Processor          `json:"processors,omitempty"`
}

// Arguments holds the split game/JVM launch argument token lists. Tokens
// are either plain strings or rule-gated objects; the installer only
// appends to the lists, so elements stay as raw JSON for the launch
// collaborator to template.
type Arguments struct {
	Game []json.RawMessage `json:"game"`
	JVM  []json.RawMessage `json:"jvm"`
}

// AssetIndexRef points at the asset index document for a version.
type AssetIndexRef struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1"`
	Size      int64  `json:"size,omitempty"`
	TotalSize int64  `json:"totalSize,omitempty"`
	URL       string `json:"url"`
}

// Downloads holds the client (and optionally server) jar descriptors.
type Downloads struct {
	Client File  `json:"client"`
	Server *File `json:"server,omitempty"`
}

// File describes one downloadable file: destination path (relative,
// slash-separated), expected SHA-1, size and source URL.
type File struct {
	Path string `json:"path,omitempty"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// JavaVersion is a version's Java runtime requirement.
type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

// DefaultJavaVersion is assumed when a version declares no requirement.
func DefaultJavaVersion() *JavaVersion {
	return &JavaVersion{Component: "jre-legacy", MajorVersion: 8}
}

// Library is one dependency of a version: a Maven coordinate plus its
// platform artifacts and install rules. SkipArgs marks loader installer
// libraries that must not contribute launch arguments.
type Library struct {
	Name      string            `json:"name"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	Rules     []Rule            `json:"rules,omitempty"`
	Natives   map[string]string `json:"natives,omitempty"`
	Extract   *Extract          `json:"extract,omitempty"`
	SkipArgs  bool              `json:"skipArgs,omitempty"`
}

// LibraryDownloads holds the default artifact and any OS-specific native
// classifiers of a library.
type LibraryDownloads struct {
	Artifact    *File           `json:"artifact,omitempty"`
	Classifiers map[string]File `json:"classifiers,omitempty"`
}

// Extract lists entry prefixes excluded when unpacking a native classifier.
type Extract struct {
	Exclude []string `json:"exclude,omitempty"`
}

// Rule gates a library on OS name and architecture.
type Rule struct {
	Action   string          `json:"action"`
	OS       *RuleOS         `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// RuleOS is the os clause of a rule. Empty fields match any value.
type RuleOS struct {
	Name    string `json:"name,omitempty"`
	Arch    string `json:"arch,omitempty"`
	Version string `json:"version,omitempty"`
}

// AssetIndex maps logical asset names to content-addressed objects.
// Virtual and MapToResources flag the legacy resource layouts that require
// a secondary copy pass.
type AssetIndex struct {
	Objects        map[string]AssetObject `json:"objects"`
	Virtual        bool                   `json:"virtual,omitempty"`
	MapToResources bool                   `json:"map_to_resources,omitempty"`
}

// AssetObject is one asset blob: SHA-1 digest and size.
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// JavaManifest maps platform key -> runtime component -> available builds.
type JavaManifest map[string]map[string][]JavaRuntime

// JavaRuntime is one downloadable Java build.
type JavaRuntime struct {
	Manifest File               `json:"manifest"`
	Version  JavaRuntimeVersion `json:"version"`
}

// JavaRuntimeVersion names a Java build.
type JavaRuntimeVersion struct {
	Name     string `json:"name"`
	Released string `json:"released,omitempty"`
}

// JavaFiles is the per-component file manifest of a Java runtime.
type JavaFiles struct {
	Files map[string]JavaFile `json:"files"`
}

// JavaFile is one entry of a Java runtime: a file with downloads, a
// directory, or a link. Directories and links carry no downloads.
type JavaFile struct {
	Type       string             `json:"type"`
	Executable bool               `json:"executable,omitempty"`
	Target     string             `json:"target,omitempty"`
	Downloads  *JavaFileDownloads `json:"downloads,omitempty"`
}

// JavaFileDownloads holds the raw (and optionally compressed) variants of
// a Java runtime file.
type JavaFileDownloads struct {
	Raw  File  `json:"raw"`
	LZMA *File `json:"lzma,omitempty"`
}
