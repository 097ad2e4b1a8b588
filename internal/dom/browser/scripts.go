package browser

// snapshotScript mirrors htmlpage's snapshot using computed styles.
const snapshotScript = `(() => {
  const isHidden = (el) => {
    const s = getComputedStyle(el);
    return s.display === 'none' || s.visibility === 'hidden' || s.opacity === '0' ||
      el.offsetWidth === 0 || el.offsetHeight === 0;
  };
  const xpath = (el) => {
    let path = '';
    for (; el && el.nodeType === Node.ELEMENT_NODE; el = el.parentNode) {
      let idx = 1;
      for (let sib = el.previousElementSibling; sib; sib = sib.previousElementSibling) {
        if (sib.tagName === el.tagName) idx++;
      }
      path = '/' + el.tagName.toLowerCase() + (idx > 1 ? '[' + idx + ']' : '') + path;
    }
    return path;
  };
  const text = (el) => {
    if (!el) return '';
    const copy = el.cloneNode(true);
    copy.querySelectorAll('input, select, textarea, script, style').forEach((n) => n.remove());
    return copy.textContent.replace(/\s+/g, ' ').trim();
  };
  return Array.from(document.querySelectorAll('input, select, textarea')).map((el, i) => {
    el.setAttribute('data-jobfiller-index', String(i));
    const forLabel = el.id ? document.querySelector('label[for="' + CSS.escape(el.id) + '"]') : null;
    const hint = el.closest('[class*="label"], [class*="field"]');
    return {
      index: i,
      tag: el.tagName.toLowerCase(),
      type: (el.getAttribute('type') || '').toLowerCase(),
      id: el.id || '',
      name: el.getAttribute('name') || '',
      placeholder: el.getAttribute('placeholder') || '',
      ariaLabel: el.getAttribute('aria-label') || '',
      class: el.getAttribute('class') || '',
      forLabel: text(forLabel),
      wrapLabel: text(el.closest('label')),
      parentHint: hint ? hint.textContent.trim().substring(0, 50) : '',
      xpath: xpath(el),
      value: el.value || '',
      checked: !!el.checked,
      disabled: !!el.disabled,
      hidden: isHidden(el),
      options: el.tagName === 'SELECT'
        ? Array.from(el.options).map((o) => ({ value: o.value, text: o.text.trim() }))
        : [],
    };
  });
})()`

const attachedScript = `(() => {
  const el = document.querySelector('[data-jobfiller-index="%d"]');
  return !!el && document.contains(el);
})()`

const setValueScript = `(() => {
  const el = document.querySelector('[data-jobfiller-index="%d"]');
  if (!el) return 'detached';
  if (el.tagName === 'SELECT') {
    const opt = Array.from(el.options).find((o) => o.value === %s);
    if (!opt) return 'nooption';
    el.value = opt.value;
    return 'ok';
  }
  el.value = %s;
  return 'ok';
})()`

const setCheckedScript = `(() => {
  const el = document.querySelector('[data-jobfiller-index="%d"]');
  if (!el) return 'detached';
  el.checked = %t;
  return 'ok';
})()`

const dispatchScript = `(() => {
  const el = document.querySelector('[data-jobfiller-index="%d"]');
  if (!el) return 'detached';
  el.dispatchEvent(new Event(%s, { bubbles: true }));
  return 'ok';
})()`
