package pkgid

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

var (
	genName    = rapid.StringMatching(`[a-z][a-z0-9_-]{0,12}`)
	genVersion = rapid.StringMatching(`(0|[1-9][0-9]{0,2})\.(0|[1-9][0-9]{0,2})\.(0|[1-9][0-9]{0,2})`)
	genCommit  = rapid.StringMatching(`[0-9a-f]{7,40}`)
	genRepoURL = rapid.Custom(func(t *rapid.T) string {
		host := rapid.SampledFrom([]string{"github.com", "gitlab.com", "git.example.org"}).Draw(t, "host")
		org := rapid.StringMatching(`[a-z][a-z0-9-]{0,8}`).Draw(t, "org")
		repo := rapid.StringMatching(`[a-z][a-z0-9-]{0,8}`).Draw(t, "repo")
		suffix := rapid.SampledFrom([]string{"", ".git"}).Draw(t, "suffix")
		if rapid.Bool().Draw(t, "local") {
			return fmt.Sprintf("file:///srv/%s/%s%s", org, repo, suffix)
		}
		return fmt.Sprintf("https://%s/%s/%s%s", host, org, repo, suffix)
	})
)

func TestClassifyIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.OneOf(
			rapid.String(),
			rapid.Custom(func(t *rapid.T) string {
				return fmt.Sprintf("registry+%s#%s@%s", DefaultRegistryURL, genName.Draw(t, "name"), genVersion.Draw(t, "version"))
			}),
			rapid.Custom(func(t *rapid.T) string {
				return fmt.Sprintf("%s %s (git+%s#%s)", genName.Draw(t, "name"), genVersion.Draw(t, "version"), genRepoURL.Draw(t, "url"), genCommit.Draw(t, "commit"))
			}),
		).Draw(t, "raw")

		for _, c := range []Classifier{Structured{}, Legacy{}} {
			s1, err1 := c.Classify(raw)
			s2, err2 := c.Classify(raw)
			if (err1 == nil) != (err2 == nil) {
				t.Fatalf("%s: error mismatch %v vs %v", c.Name(), err1, err2)
			}
			if err1 != nil {
				if err1.Error() != err2.Error() {
					t.Fatalf("%s: errors differ %q vs %q", c.Name(), err1, err2)
				}
				continue
			}
			if fmt.Sprintf("%#v", s1) != fmt.Sprintf("%#v", s2) {
				t.Fatalf("%s: sources differ %#v vs %#v", c.Name(), s1, s2)
			}
		}
	})
}

func TestGitPinsAreExclusive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := genName.Draw(t, "name")
		version := genVersion.Draw(t, "version")
		repo := genRepoURL.Draw(t, "url")
		query := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) string {
			key := rapid.SampledFrom([]string{"branch", "tag", "rev", "ref", "other"}).Draw(t, "key")
			return key + "=" + genName.Draw(t, "value")
		}), 0, 4).Draw(t, "query")

		raw := "git+" + repo
		for i, q := range query {
			sep := "&"
			if i == 0 {
				sep = "?"
			}
			raw += sep + q
		}
		raw += "#" + name + "@" + version

		src, err := Structured{}.Classify(raw)
		if err != nil {
			t.Fatalf("Classify(%q) error: %v", raw, err)
		}
		d := src.(*GitSource).Descriptor()
		pins := 0
		for _, v := range []string{d.Tag, d.Branch, d.Commit} {
			if v != "" {
				pins++
			}
		}
		if pins > 1 {
			t.Fatalf("descriptor %+v has %d pins", d, pins)
		}
		if d.URL != repo {
			t.Fatalf("URL = %q, want %q", d.URL, repo)
		}
	})
}

func TestStrategiesAgree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := genName.Draw(t, "name")
		version := genVersion.Draw(t, "version")

		structured, err := Structured{}.Classify(fmt.Sprintf("registry+%s#%s@%s", DefaultRegistryURL, name, version))
		if err != nil {
			t.Fatalf("structured registry: %v", err)
		}
		legacy, err := Legacy{}.Classify(fmt.Sprintf("%s %s (registry+%s)", name, version, DefaultRegistryURL))
		if err != nil {
			t.Fatalf("legacy registry: %v", err)
		}
		if a, b := structured.(*RegistrySource).Descriptor(), legacy.(*RegistrySource).Descriptor(); a != b {
			t.Fatalf("registry descriptors differ: %q vs %q", a, b)
		}

		repo := genRepoURL.Draw(t, "url")
		commit := genCommit.Draw(t, "commit")
		structured, err = Structured{}.Classify(fmt.Sprintf("git+%s?rev=%s#%s@%s", repo, commit, name, version))
		if err != nil {
			t.Fatalf("structured git: %v", err)
		}
		legacy, err = Legacy{}.Classify(fmt.Sprintf("%s %s (git+%s?rev=%s#%s)", name, version, repo, commit, commit))
		if err != nil {
			t.Fatalf("legacy git: %v", err)
		}
		if a, b := structured.(*GitSource).Descriptor(), legacy.(*GitSource).Descriptor(); a != b {
			t.Fatalf("git descriptors differ: %+v vs %+v", a, b)
		}

		dir := "/" + rapid.StringMatching(`[a-z]{1,6}(/[a-z]{1,6}){0,3}`).Draw(t, "dir")
		structured, err = Structured{}.Classify(fmt.Sprintf("path+file://%s#%s@%s", dir, name, version))
		if err != nil {
			t.Fatalf("structured path: %v", err)
		}
		legacy, err = Legacy{}.Classify(fmt.Sprintf("%s %s (path+file://%s)", name, version, dir))
		if err != nil {
			t.Fatalf("legacy path: %v", err)
		}
		if a, b := structured.(*PathSource).Descriptor(), legacy.(*PathSource).Descriptor(); a != b {
			t.Fatalf("path descriptors differ: %q vs %q", a, b)
		}
	})
}
