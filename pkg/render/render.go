// Package render emits target-vendor configuration text from the
// normalized stack model.
//
// Rendering is a pure function of the model plus explicit options: the
// renderer owns its template source (no shared global environment) and
// identical input always produces byte-identical output, which keeps
// generated configurations diffable.
package render

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/crypto/pbkdf2"

	"github.com/stackshift-net/stackshift/pkg/model"
	"github.com/stackshift-net/stackshift/pkg/util"
)

//go:embed templates
var templatesFS embed.FS

// ManagementVLAN is the dedicated VLAN for the stack's management plane.
const ManagementVLAN = 1000

// Options are the caller-supplied parameters for the complete render mode.
// Sysname, ManagementIP, Gateway and AdminPassword are required and never
// silently defaulted.
type Options struct {
	Sysname       string
	ManagementIP  string
	Gateway       string
	AdminPassword string

	// LACP enables dynamic aggregation mode on rendered Eth-Trunk blocks.
	LACP bool

	// TrunkVLANs restricts the allow-pass membership of rendered
	// Eth-Trunk blocks. Empty means the full range.
	TrunkVLANs model.VLANSet

	// Units supplies ordered stack-unit metadata for the informational
	// header. Optional.
	Units []model.StackUnit
}

// Stats summarizes what a complete render produced.
type Stats struct {
	Interfaces  int `json:"interfaces"`
	TrunkPorts  int `json:"trunk_ports"`
	AccessPorts int `json:"access_ports"`
	EthTrunks   int `json:"eth_trunks"`
}

// Renderer generates configuration text. Construct with New; the zero
// value is not usable.
type Renderer struct {
	mgmtVLAN int
	tmpl     *template.Template
}

// New creates a renderer with its template environment parsed and ready.
func New() *Renderer {
	r := &Renderer{mgmtVLAN: ManagementVLAN}
	r.tmpl = template.Must(template.New("complete.tmpl").
		Funcs(template.FuncMap{"ifaceLines": InterfaceLines}).
		ParseFS(templatesFS, "templates/complete.tmpl"))
	return r
}

// Simple renders one block per interface wrapped in a system-view
// envelope, followed by global quit/save directives.
func (r *Renderer) Simple(records []*model.InterfaceRecord) string {
	var b strings.Builder
	b.WriteString("system-view\n\n")

	for _, rec := range records {
		b.WriteString("interface " + rec.Name + "\n")
		for _, line := range InterfaceLines(rec) {
			b.WriteString(" " + line + "\n")
		}
		b.WriteString(" quit\n\n")
	}

	b.WriteString("quit\nsave\ny\n")
	return b.String()
}

// Complete renders the full stack configuration: management plane, AAA,
// Eth-Trunk blocks (before the physical interfaces that reference them),
// and every interface block.
func (r *Renderer) Complete(records []*model.InterfaceRecord, ethTrunks []int, opts Options) (string, Stats, error) {
	if err := opts.validate(); err != nil {
		return "", Stats{}, err
	}

	data := struct {
		Sysname       string
		ManagementIP  string
		Gateway       string
		PasswordHash  string
		MgmtVLAN      int
		LACP          bool
		EthTrunkVLANs string
		Units         []model.StackUnit
		EthTrunks     []int
		Interfaces    []*model.InterfaceRecord
	}{
		Sysname:       opts.Sysname,
		ManagementIP:  opts.ManagementIP,
		Gateway:       opts.Gateway,
		PasswordHash:  HashPassword(opts.AdminPassword, opts.Sysname),
		MgmtVLAN:      r.mgmtVLAN,
		LACP:          opts.LACP,
		EthTrunkVLANs: trunkVLANClause(opts.TrunkVLANs),
		Units:         opts.Units,
		EthTrunks:     ethTrunks,
		Interfaces:    records,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", Stats{}, fmt.Errorf("rendering complete configuration: %w", err)
	}

	stats := Stats{Interfaces: len(records), EthTrunks: len(ethTrunks)}
	for _, rec := range records {
		if rec.IsLAGMember() {
			continue
		}
		switch rec.LinkMode {
		case model.LinkModeTrunk:
			stats.TrunkPorts++
		case model.LinkModeAccess:
			stats.AccessPorts++
		}
	}

	util.Infof("generated complete configuration for %s: %d interfaces, %d eth-trunks, lacp=%v",
		opts.Sysname, stats.Interfaces, stats.EthTrunks, opts.LACP)
	return buf.String(), stats, nil
}

// SuggestedFilename returns the download filename for a rendered stack.
func SuggestedFilename(sysname string) string {
	return sysname + "_config.txt"
}

func (o Options) validate() error {
	switch {
	case o.Sysname == "":
		return util.NewMissingFieldError("sysname")
	case o.ManagementIP == "":
		return util.NewMissingFieldError("management_ip")
	case o.Gateway == "":
		return util.NewMissingFieldError("gateway")
	case o.AdminPassword == "":
		return util.NewMissingFieldError("admin_password")
	}
	if !util.IsValidIPv4(o.ManagementIP) {
		return fmt.Errorf("management_ip %q: %w", o.ManagementIP, util.ErrValidationFailed)
	}
	if !util.IsValidIPv4(o.Gateway) {
		return fmt.Errorf("gateway %q: %w", o.Gateway, util.ErrValidationFailed)
	}
	return nil
}

// InterfaceLines returns the configuration lines inside one interface
// block, without indentation or the surrounding interface/quit envelope.
// Eth-Trunk members get only their membership line in place of link-type
// configuration, since L2 settings live on the trunk interface.
func InterfaceLines(rec *model.InterfaceRecord) []string {
	var lines []string

	if rec.Description != "" {
		desc := rec.Description
		if !strings.HasPrefix(desc, "description") {
			desc = "description " + desc
		}
		lines = append(lines, desc)
	}

	if rec.IsLAGMember() {
		lines = append(lines, "eth-trunk "+strconv.Itoa(rec.EthTrunk))
	} else {
		switch rec.LinkMode {
		case model.LinkModeTrunk:
			lines = append(lines, "port link-type trunk")
			if rec.PVID > 0 {
				lines = append(lines, fmt.Sprintf("port trunk pvid vlan %d", rec.PVID))
			}
			lines = append(lines, "port trunk allow-pass vlan "+trunkVLANClause(rec.TrunkVLANs))
		case model.LinkModeAccess:
			lines = append(lines, "port link-type access")
			if rec.AccessVLAN > 0 {
				lines = append(lines, fmt.Sprintf("port default vlan %d", rec.AccessVLAN))
			}
		}
	}

	if rec.Speed != "" {
		lines = append(lines, "speed "+rec.Speed)
	}
	if rec.Duplex != "" {
		lines = append(lines, "duplex "+rec.Duplex)
	}
	if rec.Shutdown {
		lines = append(lines, "shutdown")
	}

	return lines
}

// trunkVLANClause renders trunk membership in target syntax: an explicit
// space-separated list, or "2 to 4094" for the full range. An empty set
// also renders as the full range, matching how ports that never stated
// membership are expected to behave on the target platform.
func trunkVLANClause(s model.VLANSet) string {
	if s.All || s.IsEmpty() {
		return fmt.Sprintf("%d to %d", model.FirstVLAN, model.LastVLAN)
	}
	parts := make([]string, len(s.IDs))
	for i, id := range s.IDs {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}

// HashPassword derives the irreversible cipher value for the rendered AAA
// block. PBKDF2 with a sysname-derived salt keeps the hash deterministic,
// which rendering requires, while never emitting the cleartext password.
func HashPassword(password, sysname string) string {
	key := pbkdf2.Key([]byte(password), []byte("stack/"+sysname), 4096, 32, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}
