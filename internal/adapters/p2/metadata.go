package p2

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/zerr"
)

// xmlRepository covers content, artifacts and composite repository documents.
type xmlRepository struct {
	XMLName    xml.Name      `xml:"repository"`
	Name       string        `xml:"name,attr"`
	Type       string        `xml:"type,attr"`
	Properties []xmlProperty `xml:"properties>property"`
	Children   []xmlChild    `xml:"children>child"`
	Units      []xmlUnit     `xml:"units>unit"`
	Rules      []xmlRule     `xml:"mappings>rule"`
	Artifacts  []xmlArtifact `xml:"artifacts>artifact"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlChild struct {
	Location string `xml:"location,attr"`
}

type xmlUnit struct {
	ID         string        `xml:"id,attr"`
	Version    string        `xml:"version,attr"`
	Properties []xmlProperty `xml:"properties>property"`
	Provides   []xmlProvided `xml:"provides>provided"`
	Required   []xmlRequired `xml:"requires>required"`
	ReqProps   []xmlReqProps `xml:"requires>requiredProperties"`
	Filter     string        `xml:"filter"`
	Artifacts  []xmlArtRef   `xml:"artifacts>artifact"`
}

type xmlProvided struct {
	Namespace string `xml:"namespace,attr"`
	Name      string `xml:"name,attr"`
	Version   string `xml:"version,attr"`
}

type xmlRequired struct {
	Namespace string `xml:"namespace,attr"`
	Name      string `xml:"name,attr"`
	Range     string `xml:"range,attr"`
	Optional  string `xml:"optional,attr"`
	Greedy    string `xml:"greedy,attr"`
	Filter    string `xml:"filter"`
}

type xmlReqProps struct {
	Namespace string `xml:"namespace,attr"`
	Match     string `xml:"match,attr"`
	Optional  string `xml:"optional,attr"`
	Filter    string `xml:"filter"`
}

type xmlArtRef struct {
	Classifier string `xml:"classifier,attr"`
	ID         string `xml:"id,attr"`
	Version    string `xml:"version,attr"`
}

type xmlRule struct {
	Filter string `xml:"filter,attr"`
	Output string `xml:"output,attr"`
}

type xmlArtifact struct {
	Classifier string        `xml:"classifier,attr"`
	ID         string        `xml:"id,attr"`
	Version    string        `xml:"version,attr"`
	Processing []xmlStep     `xml:"processing>step"`
	Properties []xmlProperty `xml:"properties>property"`
}

type xmlStep struct {
	ID string `xml:"id,attr"`
}

func decodeRepository(r io.Reader) (*xmlRepository, error) {
	var doc xmlRepository
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func propertyMap(props []xmlProperty) map[string]string {
	if len(props) == 0 {
		return nil
	}
	m := make(map[string]string, len(props))
	for _, p := range props {
		m[p.Name] = p.Value
	}
	return m
}

// toUnit converts the xml form into a domain unit. Requirements without a namespace
// (match expression requirements) are not supported and dropped.
func (x *xmlUnit) toUnit() (*domain.InstallableUnit, error) {
	v, err := domain.ParseVersion(x.Version)
	if err != nil {
		return nil, zerr.With(err, "unit", x.ID)
	}

	u := &domain.InstallableUnit{
		ID:         domain.NewInternedString(x.ID),
		Version:    v,
		Filter:     strings.TrimSpace(x.Filter),
		Properties: propertyMap(x.Properties),
	}

	for _, p := range x.Provides {
		pv, err := domain.ParseVersion(p.Version)
		if err != nil {
			pv = domain.Version{}
		}
		u.Provides = append(u.Provides, domain.Capability{
			Namespace: p.Namespace,
			Name:      domain.NewInternedString(p.Name),
			Version:   pv,
		})
	}

	for _, r := range x.Required {
		if r.Namespace == "" {
			continue
		}
		rng, err := domain.ParseVersionRange(r.Range)
		if err != nil {
			return nil, zerr.With(err, "unit", x.ID)
		}
		u.Requires = append(u.Requires, domain.Requirement{
			Namespace: r.Namespace,
			Name:      domain.NewInternedString(r.Name),
			Range:     rng,
			Optional:  isTrue(r.Optional) || r.Greedy == "false",
			Filter:    strings.TrimSpace(r.Filter),
		})
	}

	for _, r := range x.ReqProps {
		u.Requires = append(u.Requires, domain.Requirement{
			Namespace: r.Namespace,
			Match:     r.Match,
			Optional:  isTrue(r.Optional),
			Filter:    strings.TrimSpace(r.Filter),
		})
	}

	for _, a := range x.Artifacts {
		av, err := domain.ParseVersion(a.Version)
		if err != nil {
			return nil, zerr.With(err, "unit", x.ID)
		}
		u.Artifacts = append(u.Artifacts, domain.ArtifactRef{Classifier: a.Classifier, ID: a.ID, Version: av})
	}

	return u, nil
}

func isTrue(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

// Default artifact mapping rules, used when a repository declares none.
var defaultRules = []xmlRule{
	{Filter: "(& (classifier=osgi.bundle))", Output: "${repoUrl}/plugins/${id}_${version}.jar"},
	{Filter: "(& (classifier=binary))", Output: "${repoUrl}/binary/${id}_${version}"},
	{Filter: "(& (classifier=org.eclipse.update.feature))", Output: "${repoUrl}/features/${id}_${version}.jar"},
}

// artifactLocation applies the first matching mapping rule.
func artifactLocation(rules []xmlRule, repoURL string, a *xmlArtifact, format string) (string, bool) {
	if len(rules) == 0 {
		rules = defaultRules
	}
	props := map[string]string{"classifier": a.Classifier, "id": a.ID, "version": a.Version}
	if format != "" {
		props["format"] = format
	}
	for _, rule := range rules {
		f, err := ParseFilter(rule.Filter)
		if err != nil || !f.Match(props) {
			continue
		}
		return strings.NewReplacer(
			"${repoUrl}", strings.TrimSuffix(repoURL, "/"),
			"${id}", a.ID,
			"${version}", a.Version,
			"${classifier}", a.Classifier,
		).Replace(rule.Output), true
	}
	return "", false
}

// remoteArtifact converts a canonical artifact entry. Packed or otherwise processed
// entries are skipped since only canonical jars are consumed.
func (a *xmlArtifact) remoteArtifact(rules []xmlRule, repoURL, repoID string) (domain.RemoteArtifact, bool) {
	props := propertyMap(a.Properties)
	if len(a.Processing) > 0 || props["format"] != "" {
		return domain.RemoteArtifact{}, false
	}
	loc, ok := artifactLocation(rules, repoURL, a, "")
	if !ok {
		return domain.RemoteArtifact{}, false
	}

	size := props["download.size"]
	if size == "" {
		size = props["artifact.size"]
	}
	n, _ := strconv.ParseInt(size, 10, 64)

	return domain.RemoteArtifact{
		URL:        loc,
		Repository: repoID,
		Size:       n,
		SHA256:     props["download.checksum.sha-256"],
		MD5:        props["download.md5"],
	}, true
}
