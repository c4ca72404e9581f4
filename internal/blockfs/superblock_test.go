package blockfs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuperblockEncodeDecodeRoundTrip(t *testing.T) {
	sb := superblock{
		totalBlocks: 10,
		rootIndex:   2,
		dataIndex:   3,
		dataBlocks:  7,
		fatBlocks:   1,
	}
	copy(sb.signature[:], SignatureText)

	decoded, err := decodeSuperblock(sb.encode())
	require.NoError(t, err)
	require.Equal(t, sb, decoded)
}

func TestValidateSuperblockCatchesEachInvariant(t *testing.T) {
	good := superblock{totalBlocks: 10, rootIndex: 2, dataIndex: 3, dataBlocks: 7, fatBlocks: 1}
	copy(good.signature[:], SignatureText)
	require.NoError(t, validateSuperblock(good, 10))

	badSig := good
	copy(badSig.signature[:], "XXXXXXXX")
	require.ErrorIs(t, validateSuperblock(badSig, 10), ErrBadSignature)

	badTotal := good
	badTotal.totalBlocks = 11
	require.ErrorIs(t, validateSuperblock(badTotal, 10), ErrBadLayout)

	require.ErrorIs(t, validateSuperblock(good, 11), ErrBadLayout)

	badRoot := good
	badRoot.rootIndex = 5
	require.ErrorIs(t, validateSuperblock(badRoot, 10), ErrBadLayout)

	badData := good
	badData.dataIndex = 9
	require.ErrorIs(t, validateSuperblock(badData, 10), ErrBadLayout)

	badFat := good
	badFat.fatBlocks = 2
	badFat.dataBlocks = 6
	badFat.rootIndex = 3
	badFat.dataIndex = 4
	require.ErrorIs(t, validateSuperblock(badFat, 10), ErrBadLayout)
}

func TestFatBlocksForCeilingDivision(t *testing.T) {
	require.EqualValues(t, 1, fatBlocksFor(1))
	require.EqualValues(t, 1, fatBlocksFor(2048))
	require.EqualValues(t, 2, fatBlocksFor(2049))
	require.EqualValues(t, 0, fatBlocksFor(0))
}
