package core

import (
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"

	"github.com/smartystreets/sourcecheck/contracts"
)

func TestMaskFixture(t *testing.T) {
	gunit.Run(new(MaskFixture), t)
}

type MaskFixture struct {
	*gunit.Fixture
}

func (this *MaskFixture) assertMatches(mask, name string) {
	this.So(MaskMatches(mask, name), should.BeTrue)
}
func (this *MaskFixture) assertNoMatch(mask, name string) {
	this.So(MaskMatches(mask, name), should.BeFalse)
}

func (this *MaskFixture) TestEmptyValues() {
	this.assertMatches("", "")
	this.assertMatches("*", "")
	this.assertMatches("*.*", "")
	this.assertNoMatch("", "a")
}

func (this *MaskFixture) TestMatchEverythingMasks() {
	for _, name := range []string{"a", "a.", ".a", "a.a", "web.config", "noextension"} {
		this.assertMatches("*", name)
		this.assertMatches("*.*", name)
	}
}

func (this *MaskFixture) TestLeadingLiteral() {
	this.assertMatches("b*", "ba")
	this.assertNoMatch("b*.*", "ba")
	this.assertMatches("b*", "ba.")
	this.assertMatches("b*.*", "ba.")
	this.assertMatches("b*", "b.a")
	this.assertMatches("b*.*", "b.a")
	this.assertMatches("b*", "ba.a")
	this.assertMatches("b*.*", "ba.a")
	this.assertNoMatch("b*", "cba")
	this.assertNoMatch("b*.*", "cba")
	this.assertNoMatch("b*", "cb.a")
	this.assertNoMatch("b*.*", "a.a")
	this.assertNoMatch("b*", "a")
	this.assertNoMatch("b*", ".a")
}

func (this *MaskFixture) TestTrailingLiteral() {
	this.assertMatches("*b", "ab")
	this.assertNoMatch("*.*b", "ab")
	this.assertMatches("*b", "a.b")
	this.assertMatches("*.*b", "a.b")
	this.assertMatches("*b", ".ab")
	this.assertMatches("*.*b", ".ab")
	this.assertMatches("*.*b", "a.ab")
	this.assertNoMatch("*b", "abc")
	this.assertNoMatch("*.*b", "a.bc")
	this.assertNoMatch("*b", "a")
	this.assertNoMatch("*.*b", "a.")
}

func (this *MaskFixture) TestCaseInsensitive() {
	this.assertMatches("*.JS", "app.js")
	this.assertMatches("*.js", "APP.JS")
	this.assertMatches("Web.Config", "web.config")
}

func (this *MaskFixture) TestOnlyStarIsAWildcard() {
	this.assertNoMatch("a?c", "abc")
	this.assertMatches("a?c", "a?c")
	this.assertNoMatch("[ab].txt", "a.txt")
	this.assertMatches("[ab].txt", "[ab].txt")
	this.assertMatches("{a,b}.txt", "{a,b}.txt")
	this.assertMatches(`back\slash`, `back\slash`)
	this.assertMatches("*.min.js", "jquery.min.js")
	this.assertNoMatch("*.min.js", "jquery.js")
}

func (this *MaskFixture) TestStarSpansPathSeparators() {
	this.assertMatches("scripts/*.js", "scripts/vendor/jquery.js")
	this.assertMatches("*.js", "scripts/app.js")
	this.assertNoMatch("scripts/*.js", "styles/app.js")
}

func (this *MaskFixture) TestFirstMatchingRuleWins() {
	rules := []contracts.ExpectationRule{
		{Mask: "web.config", Label: contracts.ExpectMissing},
		{Mask: "*.config", Label: contracts.ExpectIgnore},
		{Mask: "*.js", Label: contracts.ExpectMD5},
		{Mask: "*.*", Label: contracts.ExpectExist},
	}

	this.So(LookupExpectation(rules, "Web.config"), should.Equal, contracts.ExpectMissing)
	this.So(LookupExpectation(rules, "app.config"), should.Equal, contracts.ExpectIgnore)
	this.So(LookupExpectation(rules, "app.js"), should.Equal, contracts.ExpectMD5)
	this.So(LookupExpectation(rules, "logo.gif"), should.Equal, contracts.ExpectExist)
	this.So(LookupExpectation(rules[:3], "logo.gif"), should.Equal, "")
	this.So(LookupExpectation(nil, "logo.gif"), should.Equal, "")
}
