package htmlpage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobfiller/internal/dom"
)

const applicationForm = `<html><body>
<form>
  <label for="fn">First  Name</label>
  <input id="fn" type="text">
  <label>Email <input name="email" type="email"></label>
  <div class="form-field"><span>Phone number</span><input type="tel"></div>
  <input type="text" style="display: none" name="ghost">
  <input type="text" disabled name="locked">
  <select id="country"><option value="">Select...</option><option value="us">United States</option><option>Canada</option></select>
  <textarea id="bio">old</textarea>
  <input type="radio" name="auth" value="yes" checked>
  <input type="radio" name="auth" value="no">
</form>
</body></html>`

func loadForm(t *testing.T) (*Page, []*dom.Control) {
	t.Helper()
	page, err := FromString(applicationForm)
	require.NoError(t, err)
	controls, err := page.Controls(context.Background())
	require.NoError(t, err)
	require.Len(t, controls, 9)
	return page, controls
}

func TestControls_Snapshot(t *testing.T) {
	_, controls := loadForm(t)

	first := controls[0]
	assert.Equal(t, "input", first.Tag)
	assert.Equal(t, "text", first.Type)
	assert.Equal(t, "fn", first.ID)
	assert.Equal(t, "First Name", first.ForLabel)
	assert.Equal(t, "First Name", first.Label())
	assert.Equal(t, "/html/body/form/input", first.XPath)
	assert.Empty(t, first.ParentHint)

	email := controls[1]
	assert.Equal(t, "Email", email.WrapLabel)
	assert.Equal(t, "/html/body/form/label[2]/input", email.XPath)

	phone := controls[2]
	assert.Equal(t, "Phone number", phone.ParentHint)
	assert.Equal(t, "/html/body/form/div/input", phone.XPath)

	assert.True(t, controls[3].Hidden)
	assert.True(t, controls[4].Disabled)

	country := controls[5]
	assert.True(t, country.IsSelect())
	assert.Equal(t, []dom.Option{
		{Value: "", Text: "Select..."},
		{Value: "us", Text: "United States"},
		{Value: "Canada", Text: "Canada"},
	}, country.Options)
	assert.Equal(t, "", country.Value)

	assert.Equal(t, "old", controls[6].Value)

	assert.True(t, controls[7].IsRadio())
	assert.True(t, controls[7].Checked)
	assert.Equal(t, "yes", controls[7].Value)
}

func TestSetValue(t *testing.T) {
	ctx := context.Background()
	page, controls := loadForm(t)

	require.NoError(t, page.SetValue(ctx, controls[0], "Jane"))
	require.NoError(t, page.SetValue(ctx, controls[5], "us"))
	require.NoError(t, page.SetValue(ctx, controls[6], "new bio"))

	fresh, err := page.Controls(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane", fresh[0].Value)
	assert.Equal(t, "us", fresh[5].Value)
	assert.Equal(t, "new bio", fresh[6].Value)

	rendered, err := page.HTML()
	require.NoError(t, err)
	assert.Contains(t, rendered, `<textarea id="bio">new bio</textarea>`)
}

func TestSetValue_SelectWithoutValueAttribute(t *testing.T) {
	ctx := context.Background()
	page, controls := loadForm(t)

	require.NoError(t, page.SetValue(ctx, controls[5], "Canada"))

	fresh, err := page.Controls(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Canada", fresh[5].Value)
}

func TestSetValue_UnknownOption(t *testing.T) {
	page, controls := loadForm(t)

	err := page.SetValue(context.Background(), controls[5], "zz")

	var noOption *dom.NoOptionError
	require.True(t, errors.As(err, &noOption))
	assert.Equal(t, "zz", noOption.Value)
}

func TestSetChecked_RadioGroupIsExclusive(t *testing.T) {
	ctx := context.Background()
	page, controls := loadForm(t)

	require.NoError(t, page.SetChecked(ctx, controls[8], true))

	fresh, err := page.Controls(ctx)
	require.NoError(t, err)
	assert.False(t, fresh[7].Checked)
	assert.True(t, fresh[8].Checked)
}

func TestDispatch_RecordsEvents(t *testing.T) {
	ctx := context.Background()
	page, controls := loadForm(t)

	require.NoError(t, page.Dispatch(ctx, controls[0], dom.EventInput))
	require.NoError(t, page.Dispatch(ctx, controls[0], dom.EventChange))

	assert.Equal(t, []Event{
		{Index: 0, Type: "input", Bubbles: true},
		{Index: 0, Type: "change", Bubbles: true},
	}, page.Events())
}

func TestRemove_DetachesControl(t *testing.T) {
	ctx := context.Background()
	page, controls := loadForm(t)

	page.Remove(controls[0])

	assert.False(t, page.Attached(ctx, controls[0]))
	assert.True(t, page.Attached(ctx, controls[1]))

	var detached *dom.DetachedError
	assert.True(t, errors.As(page.SetValue(ctx, controls[0], "x"), &detached))
	assert.Error(t, page.Dispatch(ctx, controls[0], dom.EventInput))
}

func TestParseStyle(t *testing.T) {
	decls := parseStyle("Display: NONE; width:0px;;bogus")
	assert.Equal(t, "none", decls["display"])
	assert.Equal(t, "0px", decls["width"])
	assert.NotContains(t, decls, "bogus")
}
