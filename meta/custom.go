package meta

import "encoding/json"

// CustomMeta is a loader-contributed version document: the profile JSON
// served by the Fabric/Quilt meta services, or the version.json bundled in
// a Forge-family installer. It overlays extra libraries, arguments and a
// replacement main class onto a vanilla descriptor.
type CustomMeta struct {
	ID           string          `json:"id"`
	InheritsFrom string          `json:"inheritsFrom,omitempty"`
	ReleaseTime  string          `json:"releaseTime,omitempty"`
	Time         string          `json:"time,omitempty"`
	Type         string          `json:"type,omitempty"`
	MainClass    string          `json:"mainClass"`
	Arguments    CustomArguments `json:"arguments"`
	Libraries    []CustomLibrary `json:"libraries"`
}

// CustomArguments mirrors Arguments but with both lists optional, as the
// loader services serve them.
type CustomArguments struct {
	Game []json.RawMessage `json:"game,omitempty"`
	JVM  []json.RawMessage `json:"jvm,omitempty"`
}

// CustomLibrary is a library as loader metadata declares it: either a
// coordinate plus a maven base URL, or an embedded artifact descriptor.
type CustomLibrary struct {
	Name      string            `json:"name"`
	URL       string            `json:"url,omitempty"`
	MD5       string            `json:"md5,omitempty"`
	SHA1      string            `json:"sha1,omitempty"`
	SHA256    string            `json:"sha256,omitempty"`
	SHA512    string            `json:"sha512,omitempty"`
	Size      int64             `json:"size,omitempty"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
}

// Installer is the install_profile.json of a Forge-family installer
// package: substitution variables, post-install processor steps and the
// libraries the processors need on their classpaths.
type Installer struct {
	Data       map[string]DataEntry `json:"data,omitempty"`
	Processors []Processor          `json:"processors,omitempty"`
	Libraries  []CustomLibrary      `json:"libraries"`
	MirrorList string               `json:"mirrorList,omitempty"`
}

// Processor is one post-install external program invocation. Success is
// the persisted completion flag; a step whose flag has been durably saved
// is never re-executed.
type Processor struct {
	Classpath []string          `json:"classpath"`
	Args      []string          `json:"args"`
	Sides     []string          `json:"sides,omitempty"`
	Outputs   map[string]string `json:"outputs,omitempty"`
	Jar       string            `json:"jar"`
	Success   bool              `json:"success,omitempty"`
}

// DataEntry is one named substitution variable from an installer package,
// with per-side values.
type DataEntry struct {
	Client string `json:"client"`
	Server string `json:"server"`
}
