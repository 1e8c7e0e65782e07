package config

import "strings"

func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	for _, layer := range layers {
		out.Repo = ResolveAndTrim(out.Repo, layer.Repo)
		out.Paths = ResolveStrings(out.Paths, layer.Paths)
		out.Excludes = ResolveStrings(out.Excludes, layer.Excludes)
		out.PathRegex = ResolveStrings(out.PathRegex, layer.PathRegex)
		out.ExcludeTypical = ResolveBool(out.ExcludeTypical, layer.ExcludeTypical)
		out.DetectLangs = ResolveStrings(out.DetectLangs, layer.DetectLangs)
		out.NoGit = ResolveBool(out.NoGit, layer.NoGit)
		out.Progress = ResolveBool(out.Progress, layer.Progress)
		out.Jobs = ResolveInt(out.Jobs, layer.Jobs)
		out.Limit = ResolveInt(out.Limit, layer.Limit)
		out.MaxFileBytes = ResolveInt(out.MaxFileBytes, layer.MaxFileBytes)
		out.Output = ResolveAndTrim(out.Output, layer.Output)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "text"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}

func MergeProject(base ProjectSettings, layers ...ProjectConfig) ProjectSettings {
	out := base
	for _, layer := range layers {
		out.Packages = ResolveStrings(out.Packages, layer.Packages)
		if layer.Tests != nil {
			out.Tests = append([]string{}, (*layer.Tests)...)
		}
		out.DiscoverPackages = ResolveBool(out.DiscoverPackages, layer.DiscoverPackages)
	}
	return out
}
