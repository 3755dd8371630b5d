package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// sshURLPattern matches the scp-like syntax git@host:owner/repo(.git).
var sshURLPattern = regexp.MustCompile(`^git@([^:]+):([^/]+)/([^/]+?)(?:\.git)?$`)

// ParseRepoURL normalizes a git remote reference and derives the repository
// owner and name from it. Accepted shapes: http(s) URLs, git@host:owner/repo
// SSH syntax, and the short owner/repo form (expanded to a GitHub HTTPS URL).
// Anything else is passed through with the name taken from the last path
// segment.
func ParseRepoURL(raw string) (canonical, owner, name string) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), ".git")

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		if parsed, err := url.Parse(trimmed); err == nil {
			segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
			if len(segments) >= 2 {
				owner = segments[0]
				name = segments[1]
				canonical = fmt.Sprintf("%s://%s/%s/%s.git", parsed.Scheme, parsed.Host, owner, name)
				return canonical, owner, name
			}
		}
	}

	if match := sshURLPattern.FindStringSubmatch(strings.TrimSpace(raw)); match != nil {
		host, owner, name := match[1], match[2], match[3]
		return fmt.Sprintf("git@%s:%s/%s.git", host, owner, name), owner, name
	}

	if !strings.Contains(trimmed, "://") && !strings.HasPrefix(trimmed, "git@") {
		segments := strings.Split(trimmed, "/")
		if len(segments) == 2 && segments[0] != "" && segments[1] != "" {
			owner, name = segments[0], segments[1]
			return fmt.Sprintf("https://github.com/%s/%s.git", owner, name), owner, name
		}
	}

	// Fallback: keep the reference as given, name from the last segment.
	segments := strings.Split(trimmed, "/")
	name = segments[len(segments)-1]
	return strings.TrimSpace(raw), "", name
}

// RepoNameFromURL returns the repository name a spec defaults to when the
// config line carries no explicit name.
func RepoNameFromURL(raw string) string {
	_, _, name := ParseRepoURL(raw)
	return name
}

// RepoOwnerFromURL returns the owning user or organization derived from a
// remote reference, or an empty string when it cannot be determined.
func RepoOwnerFromURL(raw string) string {
	_, owner, _ := ParseRepoURL(raw)
	return owner
}

// ParseSpecLine parses one `url[,branch[,name]]` config line into a
// PackageSpec. The line must already be stripped of comments and surrounding
// whitespace. An empty URL field yields a MalformedSpecLineError.
func ParseSpecLine(line, sourceFile string) (PackageSpec, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if fields[0] == "" {
		return PackageSpec{}, &MalformedSpecLineError{Line: line, SourceFile: sourceFile}
	}

	spec := PackageSpec{
		URL:        fields[0],
		SourceFile: sourceFile,
	}
	if len(fields) > 1 {
		spec.Branch = fields[1]
	}
	if len(fields) > 2 && fields[2] != "" {
		spec.Name = fields[2]
	} else {
		spec.Name = RepoNameFromURL(fields[0])
	}
	return spec, nil
}
