package configsync

import "abconfig/internal/structures"

const (
	EnvironmentProd  = "prod"
	EnvironmentStage = "stage"
)

// IsProd reports whether the client targets the prod environment. The
// environment is an explicit configuration value; ForceProd lets a stage
// build opt into prod for verification.
func IsProd(conf *structures.Config) bool {
	return conf.Remote.Environment == EnvironmentProd || conf.Remote.ForceProd
}

func EnvironmentName(conf *structures.Config) string {
	if IsProd(conf) {
		return EnvironmentProd
	}
	return EnvironmentStage
}

func BaseURL(conf *structures.Config) string {
	if IsProd(conf) {
		return conf.Remote.ProdUrl
	}
	return conf.Remote.StageUrl
}
