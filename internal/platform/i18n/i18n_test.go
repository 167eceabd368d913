package i18n

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/language"
)

func TestLoad(t *testing.T) {
	Convey("Given the embedded catalogs", t, func() {
		b, err := Load("es")
		So(err, ShouldBeNil)

		Convey("Then Spanish and English are supported with Spanish as default", func() {
			So(len(b.Supported()), ShouldEqual, 2)
			So(b.Default().String(), ShouldEqual, "es")
		})

		Convey("And both catalogs define the same keys", func() {
			for key := range b.keys[language.MustParse("es")] {
				So(b.Has(language.MustParse("en"), key), ShouldBeTrue)
			}
			for key := range b.keys[language.MustParse("en")] {
				So(b.Has(language.MustParse("es"), key), ShouldBeTrue)
			}
		})

		Convey("And printers translate and format per language", func() {
			es := b.Printer(language.MustParse("es"))
			en := b.Printer(language.MustParse("en"))
			So(es.Sprintf("form.left"), ShouldEqual, "Babor")
			So(en.Sprintf("form.left"), ShouldEqual, "Left")
			So(en.Sprintf("report.boat", 10, 5), ShouldEqual, "Boat: DB10 · Benches: 5")
			So(en.Sprintf("report.seat", "Ana", 60.0), ShouldEqual, "Ana (60.0 kg)")
			So(es.Sprintf("report.seat", "Ana", 60.5), ShouldEqual, "Ana (60,5 kg)")
		})
	})

	Convey("Given an unknown default language", t, func() {
		_, err := Load("fr")

		Convey("Then loading fails", func() {
			So(errors.Is(err, ErrUnknownDefault), ShouldBeTrue)
		})
	})

	Convey("Given broken catalogs", t, func() {
		Convey("When no locale files exist", func() {
			_, err := LoadFromFS(fstest.MapFS{}, "es")
			So(errors.Is(err, ErrCatalog), ShouldBeTrue)
		})

		Convey("When a file is not valid YAML", func() {
			fsys := fstest.MapFS{"locales/es.yaml": {Data: []byte("locale: [")}}
			_, err := LoadFromFS(fsys, "es")
			So(errors.Is(err, ErrCatalog), ShouldBeTrue)
		})

		Convey("When a locale tag is invalid", func() {
			fsys := fstest.MapFS{"locales/xx.yaml": {Data: []byte("locale: \"not a tag!\"\nmessages: {}\n")}}
			_, err := LoadFromFS(fsys, "es")
			So(errors.Is(err, ErrCatalog), ShouldBeTrue)
		})
	})
}

func TestResolve(t *testing.T) {
	Convey("Given a bundle and incoming requests", t, func() {
		b, err := Load("es")
		So(err, ShouldBeNil)

		Convey("When the query names a language", func() {
			r := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
			r.Header.Set("Accept-Language", "es")
			tag, persist := b.Resolve(r)

			Convey("Then the query wins and should be persisted", func() {
				So(tag.String(), ShouldEqual, "en")
				So(persist, ShouldBeTrue)
			})
		})

		Convey("When only a cookie is present", func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en"})
			tag, persist := b.Resolve(r)

			Convey("Then the cookie is used", func() {
				So(tag.String(), ShouldEqual, "en")
				So(persist, ShouldBeFalse)
			})
		})

		Convey("When only Accept-Language is present", func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Accept-Language", "en-GB,en;q=0.8")
			tag, _ := b.Resolve(r)

			Convey("Then the closest supported language is used", func() {
				So(tag.String(), ShouldEqual, "en")
			})
		})

		Convey("When nothing usable is given", func() {
			r := httptest.NewRequest(http.MethodGet, "/?lang=zz-invalid-", nil)
			tag, persist := b.Resolve(r)

			Convey("Then the default is used", func() {
				So(tag.String(), ShouldEqual, "es")
				So(persist, ShouldBeFalse)
			})
		})

		Convey("When the cookie is written", func() {
			w := httptest.NewRecorder()
			SetCookie(w, language.MustParse("en"))

			Convey("Then it carries the tag", func() {
				So(w.Header().Get("Set-Cookie"), ShouldContainSubstring, "lang=en")
			})
		})
	})
}
