package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/engine/transform"
)

func TestInlineResources_Collect(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "styleUrls merged before existing styles",
			src:  "@Component({\n  selector: 'a',\n  styles: ['.a{color:red}'],\n  styleUrls: ['./b.scss'],\n})\nclass A {}\n",
			want: "@Component({\n  selector: 'a',\n  styles: [require('./b.scss?ng-template').default, '.a{color:red}'],\n})\nclass A {}\n",
		},
		{
			name: "styleUrls declared before styles",
			src:  "@Component({\n  styleUrls: ['./a.scss', './b.scss'],\n  styles: ['.a{}'],\n})\nclass A {}\n",
			want: "@Component({\n  styles: [require('./a.scss?ng-template').default, require('./b.scss?ng-template').default, '.a{}'],\n})\nclass A {}\n",
		},
		{
			name: "template url without relative prefix",
			src:  "@Component({ templateUrl: 'a.html' })\nclass A {}\n",
			want: "@Component({ template: require('./a.html?ng-template') })\nclass A {}\n",
		},
		{
			name: "styleUrls renamed to styles",
			src:  "@Component({ styleUrls: ['./a.scss', `b.css`] })\nclass A {}\n",
			want: "@Component({ styles: [require('./a.scss?ng-template').default, require('./b.css?ng-template').default] })\nclass A {}\n",
		},
		{
			name: "single styleUrl",
			src:  "@Component({ selector: 'a', styleUrl: '../a.css' })\nexport class A {}\n",
			want: "@Component({ selector: 'a', styles: [require('../a.css?ng-template').default] })\nexport class A {}\n",
		},
		{
			name: "inline styles string becomes an array",
			src:  "@Component({\n  styles: '.a{}',\n  styleUrl: './a.css',\n})\nclass A {}\n",
			want: "@Component({\n  styles: [require('./a.css?ng-template').default, '.a{}'],\n})\nclass A {}\n",
		},
		{
			name: "single line removal of last property",
			src:  "@Component({ styles: ['.a{}'], styleUrls: ['./a.css'] })\nclass A {}\n",
			want: "@Component({ styles: [require('./a.css?ng-template').default, '.a{}'] })\nclass A {}\n",
		},
		{
			name: "directives are left alone",
			src:  "@Directive({ templateUrl: './a.html' })\nclass A {}\n",
			want: "@Directive({ templateUrl: './a.html' })\nclass A {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := apply(t, "a.ts", tt.src, transform.InlineResources{Suffix: domain.ResourceSuffix})
			assert.Equal(t, tt.want, out.Code)
		})
	}
}

func TestInlineResources_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "computed template url", src: "@Component({ templateUrl: base + '/a.html' })\nclass A {}\n"},
		{name: "computed style url", src: "@Component({ styleUrls: [base] })\nclass A {}\n"},
		{name: "unsupported styles value", src: "@Component({ styles: STYLES, styleUrls: ['./a.css'] })\nclass A {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transform.Apply(t.Context(), "a.ts", []byte(tt.src),
				[]transform.Transform{transform.InlineResources{Suffix: domain.ResourceSuffix}})
			require.ErrorIs(t, err, domain.ErrTransformFailed)
		})
	}
}
