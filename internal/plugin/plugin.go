// Package plugin dispatches ns::var lookups for namespaces the core
// doesn't know about (spec §4.2a) to external gRPC plugins. The request
// and reply shapes are fixed by a single embedded schema shared by every
// plugin -- the plugin author's own data model never has to be known at
// compile time, only conveyed through that one generic Lookup call -- so
// the dynamic message machinery the teacher uses for arbitrary
// user-supplied .proto files is exercised here against one schema this
// package owns outright.
package plugin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/ion-shell/ion/internal/diag"
)

const defaultTimeout = 2 * time.Second

const schemaFile = "ion_plugin.proto"

const schemaSource = `
syntax = "proto3";
package ion.plugin;

message LookupRequest {
  string namespace = 1;
  string key = 2;
}

message LookupReply {
  string value = 1;
  bool found = 2;
}

service Namespace {
  rpc Lookup(LookupRequest) returns (LookupReply);
}
`

var (
	schemaOnce sync.Once
	schemaErr  error
	methodDesc *desc.MethodDescriptor
)

func loadSchema() {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{schemaFile: schemaSource}),
	}
	fds, err := parser.ParseFiles(schemaFile)
	if err != nil {
		schemaErr = fmt.Errorf("parse plugin schema: %w", err)
		return
	}
	svc := fds[0].FindService("ion.plugin.Namespace")
	if svc == nil {
		schemaErr = fmt.Errorf("plugin schema missing service ion.plugin.Namespace")
		return
	}
	methodDesc = svc.FindMethodByName("Lookup")
	if methodDesc == nil {
		schemaErr = fmt.Errorf("plugin schema missing method Lookup")
	}
}

// Registry dials each configured plugin target lazily and caches the
// connection for reuse, satisfying store.PluginDispatcher.
type Registry struct {
	entries map[string]Entry

	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

// NewRegistry builds a Registry from a loaded manifest.
func NewRegistry(m *Manifest) *Registry {
	r := &Registry{
		entries: make(map[string]Entry, len(m.Plugins)),
		conns:   make(map[string]*grpc.ClientConn),
	}
	for _, e := range m.Plugins {
		r.entries[e.Namespace] = e
	}
	return r
}

// Dispatch looks key up under namespace via the matching plugin's gRPC
// Lookup method. It returns ok=false for an unconfigured namespace, a
// schema/dial/transport failure, or a reply with found=false -- the caller
// (store.GetString) cannot distinguish these, which matches spec §4.2a's
// uniform "absent" treatment of plugin failures. Every failure other than
// a legitimate found=false reply is reported to stderr (spec §7).
func (r *Registry) Dispatch(namespace, key string) (string, bool) {
	entry, ok := r.entries[namespace]
	if !ok {
		diag.Errorf("%s::%s: no plugin configured for namespace %q", namespace, key, namespace)
		return "", false
	}

	schemaOnce.Do(loadSchema)
	if schemaErr != nil {
		diag.Errorf("%s::%s: %v", namespace, key, schemaErr)
		return "", false
	}

	conn, err := r.conn(entry.Target)
	if err != nil {
		diag.Errorf("%s::%s: dial %s: %v", namespace, key, entry.Target, err)
		return "", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), entry.timeout())
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, "ion-correlation-id", uuid.New().String())

	req := dynamic.NewMessage(methodDesc.GetInputType())
	req.SetFieldByName("namespace", namespace)
	req.SetFieldByName("key", key)

	reply := dynamic.NewMessage(methodDesc.GetOutputType())
	if err := conn.Invoke(ctx, "/ion.plugin.Namespace/Lookup", req, reply); err != nil {
		diag.Errorf("%s::%s: %v", namespace, key, err)
		return "", false
	}

	found, _ := reply.TryGetFieldByName("found")
	if b, ok := found.(bool); ok && !b {
		return "", false
	}
	value, _ := reply.TryGetFieldByName("value")
	s, ok := value.(string)
	return s, ok
}

func (r *Registry) conn(target string) (*grpc.ClientConn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conns[target]; ok {
		return c, nil
	}
	c, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	r.conns[target] = c
	return c, nil
}

// Close tears down every cached connection.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conns {
		c.Close()
	}
	r.conns = make(map[string]*grpc.ClientConn)
}
