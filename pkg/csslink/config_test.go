package csslink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/srediag/plugin-css/api"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestDefaultConfig() {
	config := DefaultConfig()
	s.Require().Equal(5000*time.Millisecond, config.LoadTimeout)
	s.Require().NotNil(config.ShouldUnmount)
	s.Require().True(*config.ShouldUnmount)
	s.Require().NotNil(config.Factory)
	s.Require().Equal(4, config.MountParallelism)
	s.Require().False(config.UseBuildAssets)
}

func (s *ConfigTestSuite) TestNewRejectsBadConfig() {
	_, err := New(nil)
	s.Require().ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.Require().ErrorIs(err, ErrNilDocument)

	_, err = New(&Config{Document: newFakeDoc(true), UseBuildAssets: true})
	s.Require().ErrorIs(err, ErrNoAssetProvider)

	_, err = New(&Config{
		Document:    newFakeDoc(true),
		Stylesheets: []api.StylesheetRef{api.URLRef("")},
	})
	s.Require().ErrorIs(err, ErrEmptyHref)

	_, err = New(&Config{
		Document:    newFakeDoc(true),
		Stylesheets: []api.StylesheetRef{api.LinkRef{}},
	})
	s.Require().ErrorIs(err, ErrEmptyHref)
}

func (s *ConfigTestSuite) TestNewFillsDefaults() {
	lc, err := New(&Config{
		Document:    newFakeDoc(true),
		Stylesheets: []api.StylesheetRef{api.URLRef("a.css")},
	})
	s.Require().Nil(err)
	s.Require().Equal(5000*time.Millisecond, lc.cfg.LoadTimeout)
	s.Require().True(*lc.cfg.ShouldUnmount)
	s.Require().NotNil(lc.cfg.Factory)
	s.Require().Equal(4, lc.cfg.MountParallelism)
	s.Require().Equal(1, lc.StylesheetCount())
}

func (s *ConfigTestSuite) TestNewDoesNotMutateInput() {
	cfg := &Config{
		Document:    newFakeDoc(true),
		Stylesheets: []api.StylesheetRef{api.URLRef("a.css")},
	}
	_, err := New(cfg)
	s.Require().Nil(err)
	s.Require().Zero(cfg.LoadTimeout)
	s.Require().Nil(cfg.ShouldUnmount)
	s.Require().Nil(cfg.Factory)
}

type staticAssets []string

func (s staticAssets) CSSURLs() ([]string, error) {
	return s, nil
}

func (s *ConfigTestSuite) TestBuildAssetsAppended() {
	lc, err := New(&Config{
		Document:       newFakeDoc(true),
		Stylesheets:    []api.StylesheetRef{api.URLRef("a.css")},
		UseBuildAssets: true,
		Assets:         staticAssets{"/static/main.css", "a.css"},
	})
	s.Require().Nil(err)
	// a.css appears in both lists and collapses to one entry.
	s.Require().Equal(2, lc.StylesheetCount())
	s.Require().Equal([]resolvedRef{
		{href: "a.css", shouldUnmount: true},
		{href: "/static/main.css", shouldUnmount: true},
	}, lc.refs)
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
