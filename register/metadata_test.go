package register

import (
	"testing"

	"github.com/0xsoniclabs/poissonlab/utils"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRegister_MakeRunMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	meta := map[string]string{
		"AppName": "testApp",
	}
	rm, err := MakeRunMetadata(":memory:", MakeRunIdentity(0, &utils.Config{
		Rate:    7.0,
		NumRuns: 99,
	}), func() (map[string]string, error) {
		return meta, nil
	})
	assert.NoError(t, err)
	assert.NotNil(t, rm)
	assert.Equal(t, meta["AppName"], rm.Meta["AppName"])
	assert.Equal(t, "7", rm.Meta["Rate"])
	assert.Equal(t, "99", rm.Meta["NumRuns"])
	assert.NotEmpty(t, rm.Meta["RunId"])

}

func TestRunMetadata_Print(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPrinter := utils.NewMockPrinter(ctrl)
	meta := &RunMetadata{
		Meta: map[string]string{},
		Ps:   utils.NewCustomPrinters([]utils.Printer{mockPrinter}),
	}
	mockPrinter.EXPECT().Print()
	meta.Print()
}

func TestRunMetadata_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPrinter := utils.NewMockPrinter(ctrl)
	meta := &RunMetadata{
		Meta: map[string]string{},
		Ps:   utils.NewCustomPrinters([]utils.Printer{mockPrinter}),
	}
	mockPrinter.EXPECT().Close()
	meta.Close()
}

func TestRunMetadata_sqlite3(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	meta := map[string]string{
		"AppName": "testApp",
	}
	rm := &RunMetadata{
		Meta: meta,
		Ps:   utils.NewPrinters(),
	}
	a, b, c, d := rm.sqlite3(":memory:")
	assert.Equal(t, ":memory:", a)
	assert.NotNil(t, b)
	assert.NotNil(t, c)
	assert.NotNil(t, d)
	out := d()
	assert.Equal(t, len(meta), len(out))
}

func TestRegister_FetchUnixInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	info, err := FetchUnixInfo()
	assert.NoError(t, err)
	assert.NotNil(t, info)
	assert.Equal(t, 10, len(info))
}

func TestRegister_fetchUnixInfo_FailedProbesAreEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockShell := utils.NewMockShellExecutor(ctrl)
	mockShell.EXPECT().
		Command("sh", "-c", gomock.Any()).
		Return(nil, assert.AnError).
		Times(7)

	info, err := fetchUnixInfo(mockShell)
	assert.NoError(t, err)
	assert.Equal(t, 10, len(info))
	assert.Empty(t, info["Processor"])
	assert.Empty(t, info["Hostname"])
	assert.NotEmpty(t, info["GoVersion"])
	assert.NotEmpty(t, info["NumCpu"])
}
