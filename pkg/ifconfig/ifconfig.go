// Package ifconfig asks the configuration daemon which interfaces are
// configured and what type and tag key each one has.
package ifconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/veesix-networks/netcfg/pkg/logger"
)

// ErrUnavailable means no configd session could be established or the
// interfaces tree does not exist.
var ErrUnavailable = errors.New("configuration daemon unavailable")

const interfacesNode = "interfaces"

type ConfigClient interface {
	NodeExists(ctx context.Context, path []string) (bool, error)
	TreeGet(ctx context.Context, path []string) (map[string]any, error)
	TemplateGet(ctx context.Context, path []string) (map[string]any, error)
}

type DialFunc func(ctx context.Context) (ConfigClient, error)

// IfConfig is the interface type (e.g. "dataplane") and the name of the tag
// field its list entries are keyed by (e.g. "tagnode").
type IfConfig struct {
	Type string `json:"type" yaml:"type"`
	Key  string `json:"key" yaml:"key"`
}

// GetInterfaceConfig maps every configured interface name to its type and
// key. An empty map means nothing is configured.
func GetInterfaceConfig(ctx context.Context, dial DialFunc) (map[string]IfConfig, error) {
	log := logger.Component(logger.IfConfig)

	client, err := dial(ctx)
	if err != nil {
		log.Warn("Cannot establish client session", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	exists, err := client.NodeExists(ctx, []string{interfacesNode})
	if err != nil {
		return nil, fmt.Errorf("check %s node: %w", interfacesNode, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: no %s node", ErrUnavailable, interfacesNode)
	}

	tree, err := client.TreeGet(ctx, []string{interfacesNode})
	if err != nil {
		return nil, fmt.Errorf("get %s tree: %w", interfacesNode, err)
	}

	types, _ := tree[interfacesNode].(map[string]any)
	result := make(map[string]IfConfig)

	for ifType, entries := range types {
		tmpl, err := client.TemplateGet(ctx, []string{interfacesNode, ifType})
		if err != nil {
			return nil, fmt.Errorf("get template for %s: %w", ifType, err)
		}
		tagType, _ := tmpl["key"].(string)
		if tagType == "" {
			log.Debug("Interface type has no tag key", "type", ifType)
			continue
		}

		list, _ := entries.([]any)
		for _, entry := range list {
			fields, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			name, _ := fields[tagType].(string)
			if name == "" {
				continue
			}
			result[name] = IfConfig{Type: ifType, Key: tagType}
		}
	}

	log.Debug("Loaded interface config", "interfaces", len(result))
	return result, nil
}
