package motion

import (
	"crypto/md5"
	"encoding/binary"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schemaFileID(t *testing.T) uint64 {
	t.Helper()
	data, err := os.ReadFile("motion.capnp")
	require.NoError(t, err)
	line, _, _ := strings.Cut(string(data), "\n")
	id, err := strconv.ParseUint(strings.TrimSuffix(strings.TrimPrefix(line, "@"), ";"), 0, 64)
	require.NoError(t, err)
	return id
}

func childID(parent uint64, name string) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], parent)
	sum := md5.Sum(append(b[:], name...))
	return binary.BigEndian.Uint64(sum[:8]) | 1<<63
}

func TestTypeIDsMatchSchema(t *testing.T) {
	file := schemaFileID(t)
	assert.Equal(t, uint64(0xd4c1a7e3b2f09a61), file)
	assert.Equal(t, childID(file, "MoveRequest"), uint64(MoveRequest_TypeID))
	assert.Equal(t, childID(file, "MotionPlan"), uint64(MotionPlan_TypeID))
}

func TestChildIDKnownValue(t *testing.T) {
	// c++.capnp declares namespace without an explicit id
	assert.Equal(t, uint64(0xb9c6f99ebf805f2c), childID(0xbdf87d7bb8304e81, "namespace"))
}
