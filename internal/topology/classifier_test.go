package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPartitionsByType(t *testing.T) {
	nodes := []Node{
		{ID: "vpc-1", Type: "vpc"},
		{ID: "sub-1", Type: "subnet"},
		{ID: "i-1", Type: "ec2_instance"},
		{ID: "db-1", Type: "rds_instance"},
		{ID: "vpc-2", Type: "vpc"},
	}

	p := Classify(nodes)

	assert.Len(t, p.Networks, 2)
	assert.Len(t, p.Subnets, 1)
	assert.Len(t, p.Resources, 2)
	assert.Equal(t, "vpc-1", p.Networks[0].ID)
	assert.Equal(t, "vpc-2", p.Networks[1].ID)
	assert.Equal(t, "sub-1", p.Subnets[0].ID)
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	nodes := []Node{
		{ID: "a", Type: "VPC"},
		{ID: "b", Type: "Subnet"},
		{ID: "c", Type: "SUBNET"},
		{ID: "d", Type: "Vpc"},
	}

	p := Classify(nodes)

	assert.Len(t, p.Networks, 2)
	assert.Len(t, p.Subnets, 2)
	assert.Empty(t, p.Resources)
}

func TestClassifyUnknownTypesAreResources(t *testing.T) {
	nodes := []Node{
		{ID: "a", Type: "lambda"},
		{ID: "b", Type: ""},
		{ID: "c", Type: "vpc-peering"},
	}

	p := Classify(nodes)

	assert.Empty(t, p.Networks)
	assert.Empty(t, p.Subnets)
	assert.Len(t, p.Resources, 3)
}

func TestClassifyEmptyInput(t *testing.T) {
	p := Classify(nil)

	assert.Empty(t, p.Networks)
	assert.Empty(t, p.Subnets)
	assert.Empty(t, p.Resources)
}

func TestClassifyIsTotal(t *testing.T) {
	nodes := []Node{
		{ID: "vpc-1", Type: "vpc"},
		{ID: "sub-1", Type: "subnet"},
		{ID: "i-1", Type: "instance"},
		{ID: "x", Type: "something_else"},
	}

	p := Classify(nodes)

	assert.Equal(t, len(nodes), len(p.Networks)+len(p.Subnets)+len(p.Resources))
}
