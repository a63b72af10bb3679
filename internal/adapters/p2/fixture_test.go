package p2_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
	"go.trai.ch/eqrun/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fixtureUnit describes one unit of a test repository.
type fixtureUnit struct {
	id       string
	version  string
	bundle   bool
	fragment string
	filter   string
	provides []string // namespace/name/version
	requires []string // raw <required> or <requiredProperties> elements
}

func (u fixtureUnit) xml() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<unit id='%s' version='%s'>\n", u.id, u.version)
	b.WriteString("<provides>\n")
	fmt.Fprintf(&b, "<provided namespace='org.eclipse.equinox.p2.iu' name='%s' version='%s'/>\n", u.id, u.version)
	if u.bundle {
		fmt.Fprintf(&b, "<provided namespace='osgi.bundle' name='%s' version='%s'/>\n", u.id, u.version)
	}
	if u.fragment != "" {
		fmt.Fprintf(&b, "<provided namespace='osgi.fragment' name='%s' version='%s'/>\n", u.fragment, u.version)
	}
	for _, p := range u.provides {
		parts := strings.SplitN(p, "/", 3)
		fmt.Fprintf(&b, "<provided namespace='%s' name='%s' version='%s'/>\n", parts[0], parts[1], parts[2])
	}
	b.WriteString("</provides>\n<requires>\n")
	for _, r := range u.requires {
		b.WriteString(r + "\n")
	}
	b.WriteString("</requires>\n")
	if u.filter != "" {
		fmt.Fprintf(&b, "<filter>%s</filter>\n", u.filter)
	}
	if u.bundle {
		fmt.Fprintf(&b, "<artifacts size='1'><artifact classifier='osgi.bundle' id='%s' version='%s'/></artifacts>\n",
			u.id, u.version)
	}
	b.WriteString("</unit>\n")
	return b.String()
}

func contentXML(units ...fixtureUnit) string {
	var b strings.Builder
	b.WriteString("<?xml version='1.0' encoding='UTF-8'?>\n<?metadataRepository version='1.1.0'?>\n")
	b.WriteString("<repository name='test' type='org.eclipse.equinox.internal.p2.metadata.repository.LocalMetadataRepository' version='1'>\n")
	fmt.Fprintf(&b, "<units size='%d'>\n", len(units))
	for _, u := range units {
		b.WriteString(u.xml())
	}
	b.WriteString("</units>\n</repository>\n")
	return b.String()
}

func bundlePayload(id, version string) []byte {
	return []byte("bundle " + id + " " + version)
}

func sha256Hex(b []byte) string {
	s := sha256.Sum256(b)
	return hex.EncodeToString(s[:])
}

// artifactsXML lists every bundle unit with the sha-256 of its payload.
// Entries named in corrupt publish a wrong checksum.
func artifactsXML(units []fixtureUnit, corrupt ...string) string {
	var b strings.Builder
	b.WriteString("<?xml version='1.0' encoding='UTF-8'?>\n")
	b.WriteString("<repository name='test' type='org.eclipse.equinox.p2.artifact.repository.simpleRepository' version='1'>\n")
	b.WriteString("<mappings size='2'>\n")
	b.WriteString("<rule filter='(&amp; (classifier=osgi.bundle))' output='${repoUrl}/plugins/${id}_${version}.jar'/>\n")
	b.WriteString("<rule filter='(&amp; (classifier=org.eclipse.update.feature))' output='${repoUrl}/features/${id}_${version}.jar'/>\n")
	b.WriteString("</mappings>\n<artifacts>\n")
	for _, u := range units {
		if !u.bundle {
			continue
		}
		sum := sha256Hex(bundlePayload(u.id, u.version))
		for _, c := range corrupt {
			if c == u.id {
				sum = sha256Hex([]byte("something else"))
			}
		}
		fmt.Fprintf(&b, "<artifact classifier='osgi.bundle' id='%s' version='%s'>\n", u.id, u.version)
		fmt.Fprintf(&b, "<properties size='1'><property name='download.checksum.sha-256' value='%s'/></properties>\n", sum)
		b.WriteString("</artifact>\n")
		// A packed variant that must be ignored.
		fmt.Fprintf(&b, "<artifact classifier='osgi.bundle' id='%s' version='%s'>\n", u.id, u.version)
		b.WriteString("<processing size='1'><step id='org.eclipse.equinox.p2.processing.Pack200Unpacker' required='true'/></processing>\n")
		b.WriteString("<properties size='1'><property name='format' value='packed'/></properties>\n")
		b.WriteString("</artifact>\n")
	}
	b.WriteString("</artifacts>\n</repository>\n")
	return b.String()
}

func compositeXML(kind string, children ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<?xml version='1.0' encoding='UTF-8'?>\n<?%s version='1.0.0'?>\n", kind)
	b.WriteString("<repository name='composite' type='org.eclipse.equinox.internal.p2.metadata.repository.CompositeMetadataRepository' version='1.0.0'>\n")
	fmt.Fprintf(&b, "<children size='%d'>\n", len(children))
	for _, c := range children {
		fmt.Fprintf(&b, "<child location='%s'/>\n", c)
	}
	b.WriteString("</children>\n</repository>\n")
	return b.String()
}

func jarOf(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// serveRepo serves files by path and publishes every bundle payload below prefix.
func serveRepo(t *testing.T, files map[string][]byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// addRepo registers a simple repository below prefix.
func addRepo(files map[string][]byte, prefix string, units []fixtureUnit, corrupt ...string) {
	files[prefix+"/content.xml"] = []byte(contentXML(units...))
	files[prefix+"/artifacts.xml"] = []byte(artifactsXML(units, corrupt...))
	for _, u := range units {
		if u.bundle {
			files[prefix+"/plugins/"+u.id+"_"+u.version+".jar"] = bundlePayload(u.id, u.version)
		}
	}
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}
