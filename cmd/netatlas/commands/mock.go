package commands

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
)

var (
	mockNetworks  int
	mockSubnets   int
	mockResources int
	mockSeed      int64
	mockOutput    string
	mockPretty    bool
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Emit a synthetic topology document",
	Long: `Generate a synthetic topology document for demos and tests.

The output deliberately mixes the field spellings real scanners emit
(subnet_id vs subnetId, kind vs type vs label) so it exercises the same
normalization path as production input.

Examples:
  # Small topology to stdout
  netatlas mock --networks 2 --subnets 3 --resources 4

  # Deterministic fixture
  netatlas mock --seed 42 --output fixture.json --pretty`,
	RunE: runMock,
}

func init() {
	mockCmd.Flags().IntVar(&mockNetworks, "networks", 2, "Number of networks to generate")
	mockCmd.Flags().IntVar(&mockSubnets, "subnets", 3, "Number of subnets per network")
	mockCmd.Flags().IntVar(&mockResources, "resources", 4, "Number of resources per subnet")
	mockCmd.Flags().Int64Var(&mockSeed, "seed", 1, "Random seed for deterministic output")
	mockCmd.Flags().StringVar(&mockOutput, "output", "-", "Output file, or - for stdout")
	mockCmd.Flags().BoolVar(&mockPretty, "pretty", true, "Indent the JSON output")
}

func runMock(cmd *cobra.Command, args []string) error {
	if mockNetworks < 1 || mockSubnets < 1 || mockResources < 1 {
		return fmt.Errorf("--networks, --subnets and --resources must all be at least 1")
	}

	doc := generateTopology(mockNetworks, mockSubnets, mockResources, mockSeed)

	out, closeOut, err := openOutput(mockOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)
	if mockPretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(doc)
}

// generateTopology builds a flat topology document with networks, subnets,
// placed and external resources, traffic edges and permission edges.
func generateTopology(networks, subnetsPer, resourcesPer int, seed int64) map[string]interface{} {
	rng := rand.New(rand.NewSource(seed))
	zones := []string{"az-a", "az-b", "az-c"}

	var nodes []map[string]interface{}
	var edges []map[string]interface{}
	var resourceIDs []string

	for n := 0; n < networks; n++ {
		vpcID := fmt.Sprintf("vpc-%d", n+1)
		nodes = append(nodes, map[string]interface{}{
			"id":   vpcID,
			"name": fmt.Sprintf("network-%d", n+1),
			"type": "vpc",
			"cidr": fmt.Sprintf("10.%d.0.0/16", n),
		})

		for sn := 0; sn < subnetsPer; sn++ {
			subnetID := fmt.Sprintf("sub-%d-%d", n+1, sn+1)
			subnet := map[string]interface{}{
				"id":   subnetID,
				"name": fmt.Sprintf("subnet-%d-%d", n+1, sn+1),
				"type": "Subnet",
				"cidr": fmt.Sprintf("10.%d.%d.0/24", n, sn),
				"zone": zones[rng.Intn(len(zones))],
			}
			// Alternate parent spelling; drop the zone on occasion so the
			// default policy kicks in.
			if sn%2 == 0 {
				subnet["vpc_id"] = vpcID
			} else {
				subnet["vpcId"] = vpcID
			}
			if rng.Intn(4) == 0 {
				delete(subnet, "zone")
			}
			if rng.Intn(3) == 0 {
				subnet["public"] = false
			}
			nodes = append(nodes, subnet)

			for r := 0; r < resourcesPer; r++ {
				resourceID := fmt.Sprintf("i-%d-%d-%d", n+1, sn+1, r+1)
				resourceIDs = append(resourceIDs, resourceID)
				resource := map[string]interface{}{
					"id":         resourceID,
					"name":       fmt.Sprintf("instance-%d-%d-%d", n+1, sn+1, r+1),
					"type":       "instance",
					"private_ip": fmt.Sprintf("10.%d.%d.%d", n, sn, 10+r),
				}
				if r%2 == 0 {
					resource["subnet_id"] = subnetID
				} else {
					resource["subnetId"] = subnetID
				}
				if rng.Intn(4) == 0 {
					resource["public_ip"] = fmt.Sprintf("203.0.113.%d", rng.Intn(250)+1)
				}
				nodes = append(nodes, resource)
			}
		}
	}

	// A couple of external resources with no resolvable parent.
	for e := 0; e < 2; e++ {
		externalID := fmt.Sprintf("ext-%d", e+1)
		resourceIDs = append(resourceIDs, externalID)
		nodes = append(nodes, map[string]interface{}{
			"id":   externalID,
			"name": fmt.Sprintf("external-%d", e+1),
			"type": "instance",
		})
	}

	kinds := []string{"kind", "type", "label"}
	for i, src := range resourceIDs {
		dst := resourceIDs[rng.Intn(len(resourceIDs))]
		if dst == src {
			continue
		}

		// Traffic edges under rotating spellings; some explicitly inactive.
		traffic := map[string]interface{}{
			"source":         src,
			"target":         dst,
			kinds[i%len(kinds)]: "HAS_TRAFFIC",
		}
		switch rng.Intn(4) {
		case 0:
			traffic["active"] = false
		case 1:
			traffic["is_active"] = true
		}
		edges = append(edges, traffic)

		// Inactive permission edges are what the gap index counts.
		if rng.Intn(3) == 0 {
			edges = append(edges, map[string]interface{}{
				"source": src,
				"target": dst,
				"kind":   "ALLOWED",
				"active": false,
			})
		}
	}

	return map[string]interface{}{
		"nodes": nodes,
		"edges": edges,
	}
}
