package search

import (
	"testing"

	"github.com/robvanmieghem/kawpow-search/kawpow"
)

func toDigest(t Target) kawpow.Digest {
	return kawpow.Digest(t)
}

func TestMeetsTargetEqualPasses(t *testing.T) {
	var digest Target
	digest[31] = 0x42
	target := Target(digest)
	if !MeetsTarget(toDigest(digest), target) {
		t.Fatal("digest equal to target must pass")
	}
}

func TestMeetsTargetLowerPasses(t *testing.T) {
	var digest, target Target
	digest[31] = 0x01
	target[31] = 0x02
	if !MeetsTarget(toDigest(digest), target) {
		t.Fatal("digest below target must pass")
	}
}

func TestMeetsTargetHigherFails(t *testing.T) {
	var digest, target Target
	digest[31] = 0x02
	target[31] = 0x01
	if MeetsTarget(toDigest(digest), target) {
		t.Fatal("digest above target must fail")
	}
}

func TestMeetsTargetMostSignificantByteDominates(t *testing.T) {
	var digest, target Target
	// digest has a larger most-significant byte (index 31) but a
	// smaller byte everywhere else; it must still fail.
	digest[31] = 0x02
	target[31] = 0x01
	for i := 0; i < 31; i++ {
		digest[i] = 0x00
		target[i] = 0xff
	}
	if MeetsTarget(toDigest(digest), target) {
		t.Fatal("most significant byte must dominate the comparison")
	}
}
