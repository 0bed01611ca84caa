package configsync

// ConfigType enumerates the online configs known to the client.
type ConfigType int

const (
	ConfigTypeEvent ConfigType = iota
)

func (t ConfigType) String() string {
	switch t {
	case ConfigTypeEvent:
		return "Event"
	}
	return "?"
}

func AllConfigTypes() []ConfigType {
	return []ConfigType{ConfigTypeEvent}
}

func ParseConfigType(s string) (ConfigType, bool) {
	switch s {
	case "Event", "event":
		return ConfigTypeEvent, true
	}
	return 0, false
}

type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformIos
	PlatformAndroid
	PlatformNone
)

func (p Platform) String() string {
	switch p {
	case PlatformIos:
		return "Ios"
	case PlatformAndroid:
		return "Android"
	case PlatformNone:
		return "NoPlatform"
	}
	return "Unknown"
}

func ParsePlatform(s string) Platform {
	switch s {
	case "ios":
		return PlatformIos
	case "android":
		return PlatformAndroid
	case "none":
		return PlatformNone
	}
	return PlatformUnknown
}

const (
	storePath = "/store"
	loadPath  = "/load"
	listPath  = "/list"

	platformSuffixIos     = "_ios"
	platformSuffixAndroid = "_android"

	eventNamespace = "/event"
	eventName      = "event-config-ab"
)

func configNamespace(t ConfigType) string {
	switch t {
	case ConfigTypeEvent:
		return eventNamespace
	}
	return ""
}

func configName(t ConfigType) string {
	switch t {
	case ConfigTypeEvent:
		return eventName
	}
	return ""
}

func platformSuffix(p Platform) (string, bool) {
	switch p {
	case PlatformIos:
		return platformSuffixIos, true
	case PlatformAndroid:
		return platformSuffixAndroid, true
	case PlatformNone:
		return "", true
	}
	return "", false
}

// ConfigPath resolves the remote namespace and file name for a config type
// and platform. ok is false for an unknown type/platform combination, which
// callers must treat as a configuration error: log and abort the operation.
func ConfigPath(t ConfigType, p Platform) (namespace, name string, ok bool) {
	namespace = configNamespace(t)
	if namespace == "" {
		return "", "", false
	}

	suffix, ok := platformSuffix(p)
	if !ok {
		return "", "", false
	}

	name = configName(t)
	if name == "" {
		return "", "", false
	}

	return namespace, name + suffix, true
}
